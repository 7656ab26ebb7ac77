package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/futpack/internal/adapters/http/api"
	"github.com/okian/futpack/internal/adapters/http/swagger"
	repository "github.com/okian/futpack/internal/adapters/repository"
	app "github.com/okian/futpack/internal/app"
	"github.com/okian/futpack/internal/config"
	"github.com/okian/futpack/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Select the document store backend.
	var store repository.Store
	switch cfg.StoreBackend {
	case config.StorePostgres:
		pg, err := repository.NewPGStore(ctx, cfg.PostgresURL)
		if err != nil {
			os.Stderr.WriteString("failed to connect to postgres: " + err.Error() + "\n")
			return
		}
		defer pg.Close()
		store = pg
	default:
		store = repository.NewMemStore(ctx)
	}
	loggerInstance.Info(ctx, "document store ready", logger.String("backend", cfg.StoreBackend))

	// Bootstrap configured admins so privileged operations have a first actor.
	for _, id := range cfg.AdminUsers {
		if err := store.Set(ctx, "users", id, repository.Document{"role": "admin"}, true); err != nil {
			os.Stderr.WriteString("failed to bootstrap admin " + id + ": " + err.Error() + "\n")
			return
		}
		loggerInstance.Info(ctx, "admin bootstrapped", logger.String("userID", id))
	}

	// Create the service with configuration options
	svc := app.New(store,
		app.WithLogger(loggerInstance),
		app.WithPackPrice(cfg.PackPrice),
		app.WithQuickSellRefund(cfg.QuickSellRefund),
		app.WithDailyBonus(cfg.DailyBonus),
		app.WithBonusInterval(time.Duration(cfg.BonusIntervalHours)*time.Hour),
		app.WithHighTierOdds(cfg.HighTierOdds),
		app.WithHighTierFloor(cfg.HighTierFloor),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

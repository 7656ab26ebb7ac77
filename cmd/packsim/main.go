package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/futpack/internal/packsim"
)

// Default configuration constants.
const (
	defaultCatalogSize = 200
	defaultNumPacks    = 1000
	defaultSellEvery   = 4
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultSimTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		catalogSize = flag.Int("catalog", defaultCatalogSize, "Number of catalog entries to seed")
		numPacks    = flag.Int("packs", defaultNumPacks, "Number of packs to open")
		sellEvery   = flag.Int("sell-every", defaultSellEvery, "Quick-sell one of every N drawn instances (0 disables)")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		adminID     = flag.String("admin", "sim-admin", "Acting admin user id")
		userID      = flag.String("user", "sim-collector", "Simulated collector user id")
		logFile     = flag.String("log", "", "Log file for simulation output (default: packsim_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		packsim.ShowHelp()
		return
	}

	// Setup logging
	if err := packsim.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSimTimeout)
	defer cancel()

	// Create simulation configuration
	config := &packsim.Config{
		BaseURL:     *baseURL,
		CatalogSize: *catalogSize,
		NumPacks:    *numPacks,
		SellEvery:   *sellEvery,
		Workers:     *workers,
		Timeout:     *timeout,
		AdminID:     *adminID,
		UserID:      *userID,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the simulation
	if err := packsim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}

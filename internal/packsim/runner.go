package packsim

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/okian/futpack/pkg/logger"
)

// Run executes the complete pack simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting pack simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("catalog", config.CatalogSize),
		logger.Int("packs", config.NumPacks),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("user", config.UserID))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Seed the catalog
	if err := seedCatalog(ctx, config, stats); err != nil {
		return fmt.Errorf("catalog seeding failed: %w", err)
	}

	// Step 3: Fund the collector to cover every draw
	if err := fundCollector(ctx, config, stats); err != nil {
		return fmt.Errorf("collector funding failed: %w", err)
	}

	// Step 4: Open packs concurrently
	instanceIDs, err := openPacks(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("pack opening failed: %w", err)
	}

	// Step 5: Quick-sell a share of the draws
	if err := sellInstances(ctx, config, instanceIDs, stats); err != nil {
		return fmt.Errorf("quick-sell failed: %w", err)
	}

	// Step 6: Verify the economy held together
	stats.FinalBalance, err = fetchBalance(ctx, config)
	if err != nil {
		return fmt.Errorf("final balance read failed: %w", err)
	}
	if err := verifyResults(ctx, config, instanceIDs, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url, "")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != statusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// seedCatalog writes the generated catalog through the admin API.
func seedCatalog(ctx context.Context, config *Config, stats *Stats) error {
	players := generateCatalog(ctx, config)
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/catalog"

	for i, player := range players {
		resp, err := client.Put(ctx, url, config.AdminID, player)
		if err != nil {
			return fmt.Errorf("failed to save catalog entry %d: %w", i, err)
		}
		if _, err := readResponseBody(resp); err != nil {
			return fmt.Errorf("failed to read save response %d: %w", i, err)
		}
		if resp.StatusCode != statusOK {
			return fmt.Errorf("catalog save %d failed with status %d (is %q an admin?)", i, resp.StatusCode, config.AdminID)
		}
	}

	stats.CatalogSeeded = len(players)
	log.Printf("seeded %d catalog entries", len(players))
	return nil
}

// fundCollector credits the collector with exactly enough to buy every pack.
func fundCollector(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/balance/adjust"

	body := map[string]any{"userId": config.UserID, "delta": float64(config.NumPacks)}
	resp, err := client.Post(ctx, url, config.AdminID, body)
	if err != nil {
		return fmt.Errorf("funding request failed: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("funding response read failed: %w", err)
	}
	if resp.StatusCode != statusOK {
		return fmt.Errorf("funding failed with status %d", resp.StatusCode)
	}

	stats.StartingBalance, err = fetchBalance(ctx, config)
	if err != nil {
		return err
	}
	log.Printf("collector funded: balance=%.2f", stats.StartingBalance)
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var highTierRate, packsPerSecond float64

	if stats.PacksDrawn > 0 {
		highTierRate = float64(stats.HighTierDrawn) / float64(stats.PacksDrawn)
	}
	if stats.Duration > 0 {
		packsPerSecond = float64(stats.PacksRequested) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("catalogSeeded", stats.CatalogSeeded),
		logger.Int("packsRequested", stats.PacksRequested),
		logger.Int("packsDrawn", stats.PacksDrawn),
		logger.Int("packsDeclined", stats.PacksDeclined),
		logger.Int("packsFailed", stats.PacksFailed),
		logger.Int("highTierDrawn", stats.HighTierDrawn),
		logger.Float64("highTierRate", highTierRate),
		logger.Int("instancesSold", stats.InstancesSold),
		logger.Float64("refundsCredited", stats.RefundsCredited),
		logger.Float64("startingBalance", stats.StartingBalance),
		logger.Float64("finalBalance", stats.FinalBalance),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("packsPerSecond", packsPerSecond))
}

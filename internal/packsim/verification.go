package packsim

import (
	"context"
	"fmt"
	"log"
	"math"
)

// Verification tolerance constants.
const (
	// balanceEpsilon absorbs float accumulation noise over many increments.
	balanceEpsilon = 1e-6

	// tierRateTolerance is wide: the check is a sanity bound on the draw
	// split, not a statistical test.
	tierRateTolerance = 0.05
	expectedTierRate  = 0.10
)

// verifyResults checks the invariants the economy promises: every drawn
// instance id is unique, and the final balance equals the starting balance
// minus the debits plus the refunds.
func verifyResults(ctx context.Context, config *Config, instanceIDs []string, stats *Stats) error {
	log.Println("verifying results...")

	// Instance id uniqueness
	seen := make(map[string]bool, len(instanceIDs))
	for _, id := range instanceIDs {
		if seen[id] {
			return fmt.Errorf("duplicate instance id drawn: %s", id)
		}
		seen[id] = true
	}
	log.Printf("all %d instance ids unique", len(instanceIDs))

	// Balance conservation. Each draw debits one pack price; each sale
	// credits the refund the server reported.
	expected := stats.StartingBalance - float64(stats.PacksDrawn) + stats.RefundsCredited
	if math.Abs(stats.FinalBalance-expected) > balanceEpsilon {
		return fmt.Errorf("balance drift: expected %.6f, got %.6f", expected, stats.FinalBalance)
	}
	log.Printf("balance conserved: %.2f", stats.FinalBalance)

	// Tier frequency sanity bound
	if stats.PacksDrawn > 0 {
		rate := float64(stats.HighTierDrawn) / float64(stats.PacksDrawn)
		if math.Abs(rate-expectedTierRate) > tierRateTolerance {
			log.Printf("warning: high tier rate %.3f outside expected %.2f±%.2f", rate, expectedTierRate, tierRateTolerance)
		} else {
			log.Printf("high tier rate %.3f within expected bounds", rate)
		}
	}

	log.Println("result verification completed")
	return nil
}

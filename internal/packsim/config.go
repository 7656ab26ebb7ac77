package packsim

import "time"

// Config holds configuration for the pack simulation
type Config struct {
	BaseURL     string        // Base URL of the service
	CatalogSize int           // Number of catalog entries to seed
	NumPacks    int           // Number of packs to open
	SellEvery   int           // Quick-sell one of every N drawn instances (0 disables)
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	AdminID     string        // Acting admin user id
	UserID      string        // Simulated collector user id
	LogFile     string        // Log file for simulation output
	Verbose     bool          // Enable verbose logging
}

// Stats holds simulation statistics
type Stats struct {
	CatalogSeeded   int
	PacksRequested  int
	PacksDrawn      int
	PacksDeclined   int
	PacksFailed     int
	HighTierDrawn   int
	InstancesSold   int
	RefundsCredited float64
	StartingBalance float64
	FinalBalance    float64
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

// openPackResponse mirrors the POST /packs/open response shape.
type openPackResponse struct {
	Drawn    bool `json:"drawn"`
	Instance *struct {
		ID     string `json:"id"`
		Rating int    `json:"rating"`
	} `json:"instance"`
}

// quickSellResponse mirrors the POST /packs/sell response shape.
type quickSellResponse struct {
	Refund float64 `json:"refund"`
}

// balanceResponse mirrors the GET /balance response shape.
type balanceResponse struct {
	Balance float64 `json:"balance"`
}

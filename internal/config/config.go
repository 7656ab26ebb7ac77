// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment.
// - External errors must be wrapped via this package's error helpers.
//
// The pack economy numbers (tier odds, rating floor, prices, bonus) are
// tunables with no derivation behind them. They live here so they can change
// without a code change.
package config

// Store backend names.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend selects the document store: memory or postgres.
	StoreBackend string `koanf:"store_backend"`

	// PostgresURL is the DSN used when StoreBackend is postgres.
	PostgresURL string `koanf:"postgres_url"`

	// PackPrice is the currency debited per pack draw.
	PackPrice float64 `koanf:"pack_price"`

	// HighTierOdds is the probability a draw comes from the high tier.
	HighTierOdds float64 `koanf:"high_tier_odds"`

	// HighTierFloor is the minimum rating of the high tier.
	HighTierFloor int `koanf:"high_tier_floor"`

	// QuickSellRefund is the credit granted when an instance is resold.
	QuickSellRefund float64 `koanf:"quick_sell_refund"`

	// DailyBonus is the amount granted by the login bonus.
	DailyBonus float64 `koanf:"daily_bonus"`

	// BonusIntervalHours guards the login bonus idempotency window.
	BonusIntervalHours int `koanf:"bonus_interval_hours"`

	// AdminUsers are user ids granted the admin role at startup. Roles are
	// otherwise only assignable by an existing admin, so this list is the
	// bootstrap path.
	AdminUsers []string `koanf:"admin_users"`
}

// New creates a Config with the defaults the hosted app shipped with.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		StoreBackend:       StoreMemory,
		PackPrice:          1,
		HighTierOdds:       0.10,
		HighTierFloor:      88,
		QuickSellRefund:    0.5,
		DailyBonus:         5,
		BonusIntervalHours: 24,
	}
}

package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/futpack/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.StoreMemory)
				convey.So(cfg.PackPrice, convey.ShouldEqual, 1)
				convey.So(cfg.HighTierOdds, convey.ShouldEqual, 0.10)
				convey.So(cfg.HighTierFloor, convey.ShouldEqual, 88)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FUTPACK_ADDR", ":8080")
			_ = os.Setenv("FUTPACK_PACK_PRICE", "2")
			_ = os.Setenv("FUTPACK_HIGH_TIER_ODDS", "0.25")
			_ = os.Setenv("FUTPACK_HIGH_TIER_FLOOR", "90")
			_ = os.Setenv("FUTPACK_QUICK_SELL_REFUND", "0.75")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PackPrice, convey.ShouldEqual, 2)
				convey.So(cfg.HighTierOdds, convey.ShouldEqual, 0.25)
				convey.So(cfg.HighTierFloor, convey.ShouldEqual, 90)
				convey.So(cfg.QuickSellRefund, convey.ShouldEqual, 0.75)
			})
		})

		convey.Convey("When listing bootstrap admins in the environment", func() {
			_ = os.Setenv("FUTPACK_ADMIN_USERS", "root, league-admin ,ops")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the comma list should split into trimmed ids", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AdminUsers, convey.ShouldResemble, []string{"root", "league-admin", "ops"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
pack_price: 3
high_tier_odds: 0.2
daily_bonus: 10
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FUTPACK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.PackPrice, convey.ShouldEqual, 3)
				convey.So(cfg.HighTierOdds, convey.ShouldEqual, 0.2)
				convey.So(cfg.DailyBonus, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
pack_price: 3
high_tier_floor: 85
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FUTPACK_CONFIG", tmpFile)
			_ = os.Setenv("FUTPACK_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")    // Overridden by env
				convey.So(cfg.PackPrice, convey.ShouldEqual, 3)     // From file
				convey.So(cfg.HighTierFloor, convey.ShouldEqual, 85) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FUTPACK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("FUTPACK_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When selecting the postgres backend without a DSN", func() {
			_ = os.Setenv("FUTPACK_STORE_BACKEND", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "postgres_url")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When setting odds outside the unit interval", func() {
			_ = os.Setenv("FUTPACK_HIGH_TIER_ODDS", "1.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown backend", func() {
			_ = os.Setenv("FUTPACK_STORE_BACKEND", "cassandra")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unknown store_backend")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"FUTPACK_CONFIG",
		"FUTPACK_ADDR",
		"FUTPACK_STORE_BACKEND",
		"FUTPACK_POSTGRES_URL",
		"FUTPACK_PACK_PRICE",
		"FUTPACK_HIGH_TIER_ODDS",
		"FUTPACK_HIGH_TIER_FLOOR",
		"FUTPACK_QUICK_SELL_REFUND",
		"FUTPACK_DAILY_BONUS",
		"FUTPACK_BONUS_INTERVAL_HOURS",
		"FUTPACK_ADMIN_USERS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "futpack-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}

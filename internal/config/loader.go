package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if FUTPACK_CONFIG is set
//  3. env (prefix FUTPACK_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("FUTPACK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: FUTPACK_ADDR, FUTPACK_PACK_PRICE, ...
	// Map env keys like FUTPACK_PACK_PRICE -> pack_price (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	// List-valued keys are comma separated in the environment.
	envProvider := env.ProviderWithValue("FUTPACK_", ".", func(key, value string) (string, any) {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, "futpack_")
		if key == "admin_users" {
			parts := strings.Split(value, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return key, out
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	switch cfg.StoreBackend {
	case StoreMemory:
	case StorePostgres:
		if cfg.PostgresURL == "" {
			return nil, errors.New("postgres_url must be set for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown store_backend: %s", cfg.StoreBackend)
	}
	if cfg.HighTierOdds < 0 || cfg.HighTierOdds > 1 {
		return nil, errors.New("high_tier_odds must be within [0, 1]")
	}
	if cfg.PackPrice < 0 || cfg.QuickSellRefund < 0 || cfg.DailyBonus < 0 {
		return nil, errors.New("prices and bonus must not be negative")
	}
	return &cfg, nil
}

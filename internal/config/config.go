// Package config loads the service configuration from the environment into
// an explicit value constructed once at process start and passed into the
// orchestrator and adapters. Adapter logic never performs ambient lookups.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ProviderConfig carries the credentials for one external processor. The
// secret is opaque: it is never logged and never echoed in responses. An
// empty SecretKey is legal at load time and surfaces as a provider
// configuration error when the adapter is first used.
type ProviderConfig struct {
	SecretKey string
	BaseURL   string // empty means the adapter's default API base URL
}

// Config is the full service configuration.
type Config struct {
	Port           string
	Onvo           ProviderConfig
	Stripe         ProviderConfig
	MaxAmountMinor int64 // 0 means no guard rule on the amount
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port: envOr("PORT", "8080"),
		Onvo: ProviderConfig{
			SecretKey: os.Getenv("ONVO_SECRET_KEY"),
			BaseURL:   os.Getenv("ONVO_API_BASE_URL"),
		},
		Stripe: ProviderConfig{
			SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
			BaseURL:   os.Getenv("STRIPE_API_BASE_URL"),
		},
	}

	if raw := strings.TrimSpace(os.Getenv("CHECKOUT_MAX_AMOUNT_MINOR")); raw != "" {
		max, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || max <= 0 {
			return nil, fmt.Errorf("config: CHECKOUT_MAX_AMOUNT_MINOR must be a positive integer, got %q", raw)
		}
		cfg.MaxAmountMinor = max
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Package config loads the pricing configuration from the environment.
// The values are passed explicitly to the code that needs them; nothing in
// the engine reads ambient global state.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config carries the process-wide pricing settings. The exchange rate is a
// configured constant, not a live quote; the default rates are applied only
// when an entity is created without explicit margins, never inside a price
// computation.
type Config struct {
	CompanyName     string
	EURLEIRate      decimal.Decimal
	DefaultMargin   decimal.Decimal
	DefaultOverhead decimal.Decimal
}

// Load reads the configuration from a .env file (if present) and the
// environment. Malformed values and a zero exchange rate are configuration
// errors: the process refuses to start rather than price with garbage.
func Load() *Config {
	// Missing .env is fine; env vars may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		CompanyName:     getEnv("COMPANY_NAME", "Larox Franta"),
		EURLEIRate:      getDecimal("EUR_LEI_RATE", "4.85"),
		DefaultMargin:   getDecimal("DEFAULT_MARGIN", "0.30"),
		DefaultOverhead: getDecimal("DEFAULT_OVERHEAD", "0.10"),
	}

	if cfg.EURLEIRate.IsZero() || cfg.EURLEIRate.IsNegative() {
		log.Fatalf("[FATAL] EUR_LEI_RATE must be a positive rate, got %s", cfg.EURLEIRate)
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDecimal(key, def string) decimal.Decimal {
	raw := getEnv(key, def)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("[FATAL] %s: invalid decimal %q: %v", key, raw, err)
	}
	return v
}

// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvPaymentDelayMS  = "DOORSTEP_PAYMENT_DELAY_MS"
	EnvVendorDelayMS   = "DOORSTEP_VENDOR_DELAY_MS"
	EnvDefaultVendor   = "DOORSTEP_DEFAULT_VENDOR"
	EnvFallbackDayRate = "DOORSTEP_FALLBACK_DAY_RATE"
	EnvCatalogFile     = "DOORSTEP_CATALOG_FILE"
)

// Step names used as DelayMS keys.
const (
	StepPayment = "payment"
	StepVendor  = "vendor"
)

const (
	DefaultVendor          = "1"
	DefaultFallbackDayRate = 400
)

// Config holds the settings of one storefront process.
type Config struct {
	// DelayMS overrides simulated step latency in milliseconds, keyed by
	// step name. Zero or missing keeps the step default; negative disables it.
	DelayMS map[string]int64

	DefaultVendor   string
	FallbackDayRate int64

	// CatalogFile replaces the embedded catalog when set.
	CatalogFile string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DelayMS:         map[string]int64{},
		DefaultVendor:   DefaultVendor,
		FallbackDayRate: DefaultFallbackDayRate,
	}
}

// Load reads an optional .env file from the working directory and then the
// DOORSTEP_* variables. Unset variables keep their defaults.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	for step, key := range map[string]string{StepPayment: EnvPaymentDelayMS, StepVendor: EnvVendorDelayMS} {
		ms, ok, err := parseInt(getenv, key)
		if err != nil {
			return Config{}, err
		}
		if ok {
			cfg.DelayMS[step] = ms
		}
	}

	if v := strings.TrimSpace(getenv(EnvDefaultVendor)); v != "" {
		cfg.DefaultVendor = v
	}

	rate, ok, err := parseInt(getenv, EnvFallbackDayRate)
	if err != nil {
		return Config{}, err
	}
	if ok {
		if rate <= 0 {
			return Config{}, fmt.Errorf("config: %s must be positive, got %d", EnvFallbackDayRate, rate)
		}
		cfg.FallbackDayRate = rate
	}

	cfg.CatalogFile = strings.TrimSpace(getenv(EnvCatalogFile))
	return cfg, nil
}

func parseInt(getenv func(string) string, key string) (int64, bool, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, true, nil
}

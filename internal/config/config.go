package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the console's runtime knobs.
type Config struct {
	// SyncDelay is the simulated per-item latency during a recovery drain.
	// Zero disables it; correctness never depends on it.
	SyncDelay time.Duration
	// SeedOrders controls whether the demo fleet is loaded on startup.
	SeedOrders bool
	// LogLevel is a zap level string (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SyncDelay:  500 * time.Millisecond,
		SeedOrders: true,
		LogLevel:   getEnv("OPSCONSOLE_LOG_LEVEL", "info"),
	}

	if v := os.Getenv("OPSCONSOLE_SYNC_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse OPSCONSOLE_SYNC_DELAY: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("OPSCONSOLE_SYNC_DELAY must not be negative, got %s", d)
		}
		cfg.SyncDelay = d
	}

	if v := os.Getenv("OPSCONSOLE_SEED_ORDERS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse OPSCONSOLE_SEED_ORDERS: %w", err)
		}
		cfg.SeedOrders = b
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Package config loads process-wide configuration from environment variables.
// A .env file is picked up automatically in development via godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds every setting the service reads at cold start. It is built
// once in main and passed down explicitly so components stay testable.
type Config struct {
	// Port is the HTTP API listen port.
	Port int

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// GeminiAPIKey authorizes the text-generation service. When empty the
	// generator still runs but every call fails over to the fallback profile.
	GeminiAPIKey string

	// GeminiModel selects the text-generation model.
	GeminiModel string

	// PollinationsAPIKey is appended to image URLs when set.
	PollinationsAPIKey string

	// MinBuffer is the unseen-profile floor for the most active session.
	// The producer generates a batch whenever the buffer drops below it.
	MinBuffer int

	// HardCap bounds the total number of stored profiles. The producer
	// recycles the oldest rows to get back under it after a batch.
	HardCap int

	// BatchSize is the number of profiles generated per replenishment run.
	BatchSize int

	// ProducerInterval is how often the looping producer runs.
	ProducerInterval time.Duration
}

// Load reads configuration from the environment, applying defaults.
// It fails only on a missing DATABASE_URL or an unparseable value.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               8080,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        "gemma-3-27b-it",
		PollinationsAPIKey: os.Getenv("POLLINATIONS_API_KEY"),
		MinBuffer:          50,
		HardCap:            500,
		BatchSize:          5,
		ProducerInterval:   5 * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = p
	}

	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}

	var err error
	if cfg.MinBuffer, err = intEnv("PRODUCER_MIN_BUFFER", cfg.MinBuffer); err != nil {
		return nil, err
	}
	if cfg.HardCap, err = intEnv("PRODUCER_HARD_CAP", cfg.HardCap); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = intEnv("PRODUCER_BATCH_SIZE", cfg.BatchSize); err != nil {
		return nil, err
	}

	if v := os.Getenv("PRODUCER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PRODUCER_INTERVAL: %w", err)
		}
		cfg.ProducerInterval = d
	}

	return cfg, nil
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all cadence configuration. Values come from the
// environment; every field has a usable default so a zero-config run
// works.
type Config struct {
	Database DatabaseConfig
	Features FeatureConfig
}

type DatabaseConfig struct {
	Path string `env:"CADENCE_DB_PATH"` // empty: resolved via kvstore.DefaultDBPath()
}

type FeatureConfig struct {
	DefaultTTLSeconds int    `env:"CADENCE_DEFAULT_TTL_SECONDS" envDefault:"3600"`
	SnapshotKey       string `env:"CADENCE_SNAPSHOT_KEY" envDefault:"cadence.feature_cache"`
}

// DefaultTTL returns the configured freshness window as a duration.
func (c FeatureConfig) DefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLSeconds) * time.Second
}

// Default returns a Config with sensible defaults and no environment
// applied.
func Default() Config {
	return Config{
		Features: FeatureConfig{
			DefaultTTLSeconds: 3600,
			SnapshotKey:       "cadence.feature_cache",
		},
	}
}

// Load reads configuration from the environment on top of the
// defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Package config loads runtime configuration from the environment.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds every tunable of the server process. Values come from
// WARUNG_-prefixed environment variables, optionally seeded from a .env file.
type Config struct {
	Port          int    `envconfig:"PORT" default:"8080"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"bolt"`
	BoltPath      string `envconfig:"BOLT_PATH" default:"warung.db"`
	MySQLDSN      string `envconfig:"MYSQL_DSN"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	SeedDefaults  bool   `envconfig:"SEED_DEFAULTS" default:"true"`
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("warung", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	switch cfg.StorageDriver {
	case "bolt", "memory", "mysql":
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == "mysql" && cfg.MySQLDSN == "" {
		return nil, errors.New("WARUNG_MYSQL_DSN is required for the mysql driver")
	}
	return &cfg, nil
}

// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	StoreBackend string `env:"ZEWED_STORE_BACKEND" envDefault:"sqlite"` // memory, file, sqlite or redis
	StorePath    string `env:"ZEWED_STORE_PATH" envDefault:"./data/zewed.db"`
	ServerHost   string `env:"ZEWED_SERVER_HOST" envDefault:"localhost"`
	ServerPort   int    `env:"ZEWED_SERVER_PORT" envDefault:"8080"`
	Env          string `env:"ZEWED_ENV" envDefault:"development"`
	LogLevel     string `env:"ZEWED_LOG_LEVEL" envDefault:"info"`

	// Session configuration
	SessionTimeout time.Duration `env:"ZEWED_SESSION_TIMEOUT" envDefault:"30m"`

	// Redis backend configuration
	RedisURL    string `env:"ZEWED_REDIS_URL"`
	RedisPrefix string `env:"ZEWED_REDIS_PREFIX" envDefault:"zewed:"`

	// Login rate limiting
	LoginRateLimit float64 `env:"ZEWED_LOGIN_RATE_LIMIT" envDefault:"1"` // requests per second per IP
	LoginBurst     int     `env:"ZEWED_LOGIN_BURST" envDefault:"5"`

	// GeoIP configuration
	GeoIPDBPath string `env:"ZEWED_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"ZEWED_DO_SEED" envDefault:"true"` // Seed demo data on first run
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.SessionTimeout <= 0 {
		return nil, fmt.Errorf("ZEWED_SESSION_TIMEOUT must be positive, got %s", cfg.SessionTimeout)
	}
	switch cfg.StoreBackend {
	case "memory", "file", "sqlite", "redis":
	default:
		return nil, fmt.Errorf("ZEWED_STORE_BACKEND must be one of memory, file, sqlite, redis; got %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "redis" && cfg.RedisURL == "" {
		return nil, fmt.Errorf("ZEWED_REDIS_URL is required when ZEWED_STORE_BACKEND is redis")
	}

	return cfg, nil
}

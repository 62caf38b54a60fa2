// Package config loads the service configuration from a YAML file with
// environment-variable overrides for deployment settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file omits a value.
const (
	defaultListen          = ":8080"
	defaultCacheTTLSeconds = 300
	defaultTokenExpiry     = 24 * time.Hour
)

// RedisConfig holds cache backend connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`     // host:port; empty disables Redis and uses the in-process cache.
	Password string `yaml:"password"` // Optional AUTH password.
	DB       int    `yaml:"db"`       // Redis logical database.
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `yaml:"level"`        // logrus level name; empty means info.
	File       string `yaml:"file"`         // Log file path; empty logs to stderr.
	MaxSizeMB  int    `yaml:"max-size-mb"`  // Rotate after this size.
	MaxBackups int    `yaml:"max-backups"`  // Rotated files to keep.
	MaxAgeDays int    `yaml:"max-age-days"` // Days to keep rotated files.
}

// Config is the full service configuration.
type Config struct {
	Listen          string        `yaml:"listen"`            // HTTP listen address.
	DatabaseDSN     string        `yaml:"database-dsn"`      // Postgres or SQLite DSN.
	Redis           RedisConfig   `yaml:"redis"`             // Cache backend.
	CacheTTLSeconds int           `yaml:"cache-ttl-seconds"` // Settings cache staleness bound.
	JWTSecret       string        `yaml:"jwt-secret"`        // HMAC secret for identity tokens.
	TokenExpiry     time.Duration `yaml:"token-expiry"`      // Issued token lifetime.
	Log             LogConfig     `yaml:"log"`               // Logging settings.

	BootstrapAdminUsername string `yaml:"bootstrap-admin-username"` // Created on startup when absent.
	BootstrapAdminPassword string `yaml:"bootstrap-admin-password"` // Plaintext, hashed before storage.
}

// Load reads the config file at path and applies env overrides and
// defaults. A missing file is not an error when env vars cover the
// required settings.
func Load(path string) (Config, error) {
	cfg := Config{}

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return Config{}, fmt.Errorf("config: database-dsn is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("config: jwt-secret is required")
	}
	return cfg, nil
}

// CacheTTL returns the configured cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// applyEnvOverrides lets deployment env vars win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("VENDORA_LISTEN")); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("VENDORA_DATABASE_DSN")); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("VENDORA_REDIS_ADDR")); v != "" {
		cfg.Redis.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("VENDORA_REDIS_PASSWORD")); v != "" {
		cfg.Redis.Password = v
	}
	if v := strings.TrimSpace(os.Getenv("VENDORA_JWT_SECRET")); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("VENDORA_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSeconds = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("VENDORA_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
}

// applyDefaults fills unset values.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = defaultListen
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = defaultCacheTTLSeconds
	}
	if cfg.TokenExpiry <= 0 {
		cfg.TokenExpiry = defaultTokenExpiry
	}
}

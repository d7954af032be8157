// Package config assembles the service configuration: built-in defaults,
// then an optional YAML file named by CONFIG_FILE, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/infra/db"
	envcfg "signal-feed/pkg/config"
)

// Config is the full service configuration.
type Config struct {
	HTTP       HTTPConfig        `yaml:"http"`
	Database   DatabaseConfig    `yaml:"database"`
	Pagination pagination.Config `yaml:"pagination"`
	Ratings    RatingsConfig     `yaml:"ratings"`
	Version    string            `yaml:"version"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type DatabaseConfig struct {
	URL            string              `yaml:"url"`
	Pool           db.ConnectionConfig `yaml:"pool"`
	BreakerEnabled bool                `yaml:"breaker_enabled"`
}

// RatingsConfig bounds rating writes per session.
type RatingsConfig struct {
	RateLimit int `yaml:"rate_limit"` // per minute
	Burst     int `yaml:"burst"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    64 << 10,
		},
		Database: DatabaseConfig{
			Pool:           db.DefaultConnectionConfig(),
			BreakerEnabled: true,
		},
		Pagination: pagination.DefaultConfig(),
		Ratings:    RatingsConfig{RateLimit: 10, Burst: 5},
		Version:    "dev",
	}
}

// Load builds the configuration from CONFIG_FILE (if set) and the environment.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile decodes the YAML file at path over cfg. Keys missing from the
// file keep their current values.
func (c *Config) loadFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = envcfg.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.RequestTimeout = envcfg.GetEnvDuration("REQUEST_TIMEOUT", c.HTTP.RequestTimeout)
	c.HTTP.ShutdownTimeout = envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)
	c.HTTP.MaxBodyBytes = envcfg.GetEnvInt64("MAX_BODY_BYTES", c.HTTP.MaxBodyBytes)

	c.Database.URL = envcfg.GetEnvString("DATABASE_URL", c.Database.URL)
	c.Database.Pool.MaxOpenConns = envcfg.GetEnvInt("DB_MAX_OPEN_CONNS", c.Database.Pool.MaxOpenConns)
	c.Database.Pool.MaxIdleConns = envcfg.GetEnvInt("DB_MAX_IDLE_CONNS", c.Database.Pool.MaxIdleConns)
	c.Database.Pool.ConnMaxLifetime = envcfg.GetEnvDuration("DB_CONN_MAX_LIFETIME", c.Database.Pool.ConnMaxLifetime)
	c.Database.Pool.ConnMaxIdleTime = envcfg.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", c.Database.Pool.ConnMaxIdleTime)
	c.Database.BreakerEnabled = envcfg.GetEnvBool("DB_BREAKER_ENABLED", c.Database.BreakerEnabled)

	c.Pagination = pagination.ApplyEnv(c.Pagination)

	c.Ratings.RateLimit = envcfg.GetEnvInt("RATING_RATE_LIMIT", c.Ratings.RateLimit)
	c.Ratings.Burst = envcfg.GetEnvInt("RATING_RATE_BURST", c.Ratings.Burst)

	c.Version = envcfg.GetEnvString("VERSION", c.Version)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http addr is required"))
	}
	if err := envcfg.ValidateDurationRange(c.HTTP.RequestTimeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("request_timeout: %w", err))
	}
	if err := envcfg.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("shutdown_timeout: %w", err))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max_body_bytes must be positive"))
	}
	if c.Database.URL == "" {
		errs = append(errs, db.ErrNoDSN)
	}
	if c.Pagination.DefaultLimit < 1 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		errs = append(errs, fmt.Errorf("pagination limits must satisfy 1 <= default (%d) <= max (%d)",
			c.Pagination.DefaultLimit, c.Pagination.MaxLimit))
	}
	if c.Ratings.RateLimit < 1 {
		errs = append(errs, errors.New("rating rate_limit must be positive"))
	}
	return errors.Join(errs...)
}

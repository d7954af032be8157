// Package pagination provides keyset (cursor-based) pagination primitives shared by
// every list endpoint: opaque cursor encoding, sort allow-lists, page trimming and
// the response envelope.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	DefaultLimit int `yaml:"default_limit"` // Default items per page (typically 20)
	MaxLimit     int `yaml:"max_limit"`     // Maximum allowed items per page (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: limit=20, max=100
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_LIMIT: Default items per page
//   - PAGINATION_MAX_LIMIT: Maximum items per page
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overrides the fields of base with any environment variables that are set.
func ApplyEnv(base Config) Config {
	return Config{
		DefaultLimit: getEnvAsInt("PAGINATION_DEFAULT_LIMIT", base.DefaultLimit),
		MaxLimit:     getEnvAsInt("PAGINATION_MAX_LIMIT", base.MaxLimit),
	}
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 1 {
		return defaultValue
	}
	return val
}

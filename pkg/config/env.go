// Package config reads typed settings from environment variables. Malformed
// values never fail startup: they are logged and the default is kept.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of key, or defaultValue when unset or blank.
func GetEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns key parsed as an integer.
//
//	limit := GetEnvInt("RATING_RATE_LIMIT", 10)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvInt64 is GetEnvInt for byte sizes and other 64-bit settings.
func GetEnvInt64(key string, defaultValue int64) int64 {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		warnInvalid(key, valueStr, strconv.FormatInt(defaultValue, 10), err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns key parsed by strconv.ParseBool ("1", "true", "F", ...).
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns key parsed by time.ParseDuration ("30s", "1h30m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnvString(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, defaultValue.String(), err)
		return defaultValue
	}
	return value
}

func warnInvalid(key, value, defaultValue string, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", defaultValue),
		slog.String("error", err.Error()))
}

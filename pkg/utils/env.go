package utils

import (
	"os"
	"strconv"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt reads an integer variable, returning fallback when unset or malformed.
func GetenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		LogInfo("Ignoring malformed integer env var", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
	return n
}

// GetenvDuration reads a time.ParseDuration value ("15m", "72h").
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		LogInfo("Ignoring malformed duration env var", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
	return d
}

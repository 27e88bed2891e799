package helpers

import (
	"time"
)

// ParseDuration parses a duration string and falls back to the provided
// default when the string is empty or invalid.
func ParseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

package config

import (
	"os"
	"time"
)

// Default timeouts for blocking operations.
const (
	DefaultVerifyTimeout     = 30 * time.Second
	DefaultAcceptanceTimeout = 60 * time.Second
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Verify     time.Duration // Per-store bound for a connectivity check
	Acceptance time.Duration // Bound for the external runtime's configuration loader
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - ETLPROV_VERIFY_TIMEOUT (default: 30s)
//   - ETLPROV_ACCEPTANCE_TIMEOUT (default: 60s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Verify:     parseDuration("ETLPROV_VERIFY_TIMEOUT", DefaultVerifyTimeout),
		Acceptance: parseDuration("ETLPROV_ACCEPTANCE_TIMEOUT", DefaultAcceptanceTimeout),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set, unparsable or not positive, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

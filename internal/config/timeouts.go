package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	GitHub            time.Duration // Timeout for a single GitHub API step
	Push              time.Duration // Timeout for pushing the project to GitHub
	OpenShift         time.Duration // Timeout for OpenShift lookups
	Catalog           time.Duration // Timeout for fetching the booster catalog
	RetryMaxAttempts  int           // Maximum number of catalog fetch retries
	RetryInitialDelay time.Duration // Initial delay between catalog fetch retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - LAUNCHER_TIMEOUT_GITHUB (default: 1m)
//   - LAUNCHER_TIMEOUT_PUSH (default: 5m)
//   - LAUNCHER_TIMEOUT_OPENSHIFT (default: 1m)
//   - LAUNCHER_TIMEOUT_CATALOG (default: 2m)
//   - LAUNCHER_RETRY_MAX_ATTEMPTS (default: 3)
//   - LAUNCHER_RETRY_INITIAL_DELAY (default: 500ms)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		GitHub:            parseDuration("LAUNCHER_TIMEOUT_GITHUB", 1*time.Minute),
		Push:              parseDuration("LAUNCHER_TIMEOUT_PUSH", 5*time.Minute),
		OpenShift:         parseDuration("LAUNCHER_TIMEOUT_OPENSHIFT", 1*time.Minute),
		Catalog:           parseDuration("LAUNCHER_TIMEOUT_CATALOG", 2*time.Minute),
		RetryMaxAttempts:  parseInt("LAUNCHER_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("LAUNCHER_RETRY_INITIAL_DELAY", 500*time.Millisecond),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
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

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}

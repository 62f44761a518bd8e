package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds polling, retry and concurrency parameters.
// These values can be customized via environment variables.
type Timeouts struct {
	PollInterval      time.Duration // Delay between address-readiness polls
	PollMaxTicks      int           // Polls per instance before giving up
	APICall           time.Duration // HTTP timeout for a single provider call
	RetryMaxAttempts  int           // Total calls, first included, for a transient provider read failure
	RetryInitialDelay time.Duration // Initial delay between retries
	Concurrency       int           // Worker pool bound for batch operations
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - HARBOR_WAVE_POLL_INTERVAL (default: 5s)
//   - HARBOR_WAVE_POLL_MAX_TICKS (default: 24)
//   - HARBOR_WAVE_API_TIMEOUT (default: 60s)
//   - HARBOR_WAVE_RETRY_MAX_ATTEMPTS (default: 3)
//   - HARBOR_WAVE_RETRY_INITIAL_DELAY (default: 1s)
//   - HARBOR_WAVE_CONCURRENCY (default: 4)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval:      parseDuration("HARBOR_WAVE_POLL_INTERVAL", 5*time.Second),
		PollMaxTicks:      parsePositiveInt("HARBOR_WAVE_POLL_MAX_TICKS", 24),
		APICall:           parseDuration("HARBOR_WAVE_API_TIMEOUT", 60*time.Second),
		RetryMaxAttempts:  parseInt("HARBOR_WAVE_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("HARBOR_WAVE_RETRY_INITIAL_DELAY", 1*time.Second),
		Concurrency:       parsePositiveInt("HARBOR_WAVE_CONCURRENCY", 4),
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

func parsePositiveInt(envVar string, defaultVal int) int {
	if i := parseInt(envVar, defaultVal); i > 0 {
		return i
	}
	return defaultVal
}

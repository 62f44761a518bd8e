package config

import (
	"testing"
	"time"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	clearTimeoutEnvVars(t)

	timeouts := LoadTimeouts()

	if timeouts.PollInterval != 5*time.Second {
		t.Errorf("Expected PollInterval default 5s, got %v", timeouts.PollInterval)
	}
	if timeouts.PollMaxTicks != 24 {
		t.Errorf("Expected PollMaxTicks default 24, got %d", timeouts.PollMaxTicks)
	}
	if timeouts.APICall != 60*time.Second {
		t.Errorf("Expected APICall default 60s, got %v", timeouts.APICall)
	}
	if timeouts.RetryMaxAttempts != 3 {
		t.Errorf("Expected RetryMaxAttempts default 3, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != time.Second {
		t.Errorf("Expected RetryInitialDelay default 1s, got %v", timeouts.RetryInitialDelay)
	}
	if timeouts.Concurrency != 4 {
		t.Errorf("Expected Concurrency default 4, got %d", timeouts.Concurrency)
	}
}

func TestLoadTimeouts_CustomValues(t *testing.T) {
	clearTimeoutEnvVars(t)
	t.Setenv("HARBOR_WAVE_POLL_INTERVAL", "250ms")
	t.Setenv("HARBOR_WAVE_POLL_MAX_TICKS", "7")
	t.Setenv("HARBOR_WAVE_API_TIMEOUT", "2m")
	t.Setenv("HARBOR_WAVE_RETRY_MAX_ATTEMPTS", "0")
	t.Setenv("HARBOR_WAVE_CONCURRENCY", "16")

	timeouts := LoadTimeouts()

	if timeouts.PollInterval != 250*time.Millisecond {
		t.Errorf("Expected PollInterval 250ms, got %v", timeouts.PollInterval)
	}
	if timeouts.PollMaxTicks != 7 {
		t.Errorf("Expected PollMaxTicks 7, got %d", timeouts.PollMaxTicks)
	}
	if timeouts.APICall != 2*time.Minute {
		t.Errorf("Expected APICall 2m, got %v", timeouts.APICall)
	}
	if timeouts.RetryMaxAttempts != 0 {
		t.Errorf("Expected RetryMaxAttempts 0, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.Concurrency != 16 {
		t.Errorf("Expected Concurrency 16, got %d", timeouts.Concurrency)
	}
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	clearTimeoutEnvVars(t)
	t.Setenv("HARBOR_WAVE_POLL_INTERVAL", "soon")
	t.Setenv("HARBOR_WAVE_POLL_MAX_TICKS", "0")
	t.Setenv("HARBOR_WAVE_RETRY_MAX_ATTEMPTS", "-2")
	t.Setenv("HARBOR_WAVE_CONCURRENCY", "many")

	timeouts := LoadTimeouts()

	if timeouts.PollInterval != 5*time.Second {
		t.Errorf("Expected fallback PollInterval 5s, got %v", timeouts.PollInterval)
	}
	if timeouts.PollMaxTicks != 24 {
		t.Errorf("Expected fallback PollMaxTicks 24, got %d", timeouts.PollMaxTicks)
	}
	if timeouts.RetryMaxAttempts != 3 {
		t.Errorf("Expected fallback RetryMaxAttempts 3, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.Concurrency != 4 {
		t.Errorf("Expected fallback Concurrency 4, got %d", timeouts.Concurrency)
	}
}

func clearTimeoutEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"HARBOR_WAVE_POLL_INTERVAL",
		"HARBOR_WAVE_POLL_MAX_TICKS",
		"HARBOR_WAVE_API_TIMEOUT",
		"HARBOR_WAVE_RETRY_MAX_ATTEMPTS",
		"HARBOR_WAVE_RETRY_INITIAL_DELAY",
		"HARBOR_WAVE_CONCURRENCY",
	} {
		t.Setenv(v, "")
	}
}

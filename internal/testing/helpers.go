package testing

import (
	"context"
	"testing"
	"time"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/metrics"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
)

// TestContext returns a context that is cancelled when the test ends.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// FastTimeouts polls every millisecond for up to ten ticks.
func FastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		PollInterval:      time.Millisecond,
		PollMaxTicks:      10,
		APICall:           time.Second,
		RetryMaxAttempts:  1,
		RetryInitialDelay: time.Millisecond,
		Concurrency:       4,
	}
}

// NewProvisioningContext builds a provisioning context with fast timeouts,
// a RecordingObserver and an unpushed metrics recorder.
func NewProvisioningContext(t *testing.T, cfg *config.Config, cloud digitalocean.Gateway) *provisioning.Context {
	t.Helper()
	return &provisioning.Context{
		Context:  TestContext(t),
		Config:   cfg,
		Cloud:    cloud,
		Observer: NewRecordingObserver(),
		Timeouts: FastTimeouts(),
		Metrics:  metrics.NewRecorderWithPushURL(cfg.Tag, ""),
	}
}

// Recorder returns the RecordingObserver of a context built by
// NewProvisioningContext.
func Recorder(t *testing.T, ctx *provisioning.Context) *RecordingObserver {
	t.Helper()
	obs, ok := ctx.Observer.(*RecordingObserver)
	if !ok {
		t.Fatalf("observer is %T, not *RecordingObserver", ctx.Observer)
	}
	return obs
}

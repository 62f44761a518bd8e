package provisioning

import (
	"context"

	"github.com/google/uuid"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/metrics"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
)

// Context wraps all dependencies needed for a provisioning operation.
type Context struct {
	context.Context
	Config   *config.Config
	Cloud    digitalocean.Gateway
	Observer Observer
	Timeouts *config.Timeouts
	Metrics  *metrics.Recorder
}

// NewContext creates a new provisioning context. A nil observer discards output.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	cloud digitalocean.Gateway,
	observer Observer,
) *Context {
	if observer == nil {
		observer = NewDiscardObserver()
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Cloud:    cloud,
		Observer: observer,
		Timeouts: config.LoadTimeouts(),
		Metrics:  metrics.NewRecorder(cfg.Tag),
	}
}

// Concurrency returns the worker pool bound for batch operations.
func (c *Context) Concurrency() int {
	if c.Timeouts == nil || c.Timeouts.Concurrency < 1 {
		return 1
	}
	return c.Timeouts.Concurrency
}

// WithContext returns a shallow copy of c bound to ctx.
func (c *Context) WithContext(ctx context.Context) *Context {
	out := *c
	out.Context = ctx
	return &out
}

// RunFields returns the observer fields tagging every event of one batch run
// with its fleet and a fresh run ID.
func RunFields(fleet string) map[string]string {
	return map[string]string{"fleet": fleet, "run": uuid.NewString()}
}

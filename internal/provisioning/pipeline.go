package provisioning

import (
	"fmt"
	"time"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the logic for this phase.
	Provision(ctx *Context) error
}

// Pipeline runs phases in order, stopping at the first error.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline of the given phases.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// Run executes all phases sequentially.
func (p *Pipeline) Run(ctx *Context) error {
	start := time.Now()

	for i, phase := range p.Phases {
		phaseStart := time.Now()
		name := phase.Name()

		LogPhaseStart(ctx.Observer, name)
		ctx.Observer.Progress(name, i+1, len(p.Phases))

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s phase failed: %w", name, err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Printf("completed %d phases in %v", len(p.Phases), time.Since(start).Round(time.Millisecond))
	return nil
}

type funcPhase struct {
	name string
	fn   func(*Context) error
}

func (p funcPhase) Name() string                 { return p.name }
func (p funcPhase) Provision(ctx *Context) error { return p.fn(ctx) }

// PhaseFunc adapts a function to the Phase interface.
func PhaseFunc(name string, fn func(*Context) error) Phase {
	return funcPhase{name: name, fn: fn}
}

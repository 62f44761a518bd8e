package dns

import (
	"context"

	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/util/async"
)

const phase = "dns"

// Target is one host to publish.
type Target struct {
	Host    string
	Address string
}

// TargetResult is the outcome for one Target.
type TargetResult struct {
	Target
	Outcome Outcome
	Err     error
}

// Summary collects the outcomes of a batch, in target order.
type Summary struct {
	Results []TargetResult
}

// Count returns how many results had outcome o.
func (s *Summary) Count(o Outcome) int {
	n := 0
	for _, res := range s.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Failed counts results that did not publish.
func (s *Summary) Failed() int {
	return s.Count(OutcomeFailed)
}

// ReconcileAll publishes every target on the configured domain using the
// context's worker pool. A failed target is reported as a warning and never
// affects the others.
func ReconcileAll(ctx *provisioning.Context, targets []Target) *Summary {
	r := NewReconciler(ctx.Cloud)
	domain := ctx.Config.Domain
	summary := &Summary{Results: make([]TargetResult, len(targets))}

	tasks := make([]async.Task, len(targets))
	for i, tgt := range targets {
		summary.Results[i] = TargetResult{Target: tgt, Outcome: OutcomeFailed}
		tasks[i] = async.Task{
			Name: tgt.Host,
			Func: func(c context.Context) error {
				outcome, err := r.Reconcile(c, tgt.Host, tgt.Address, domain)
				summary.Results[i].Outcome, summary.Results[i].Err = outcome, err
				return err
			},
		}
	}

	for i, res := range async.RunBounded(ctx, ctx.Concurrency(), tasks) {
		tgt := targets[i]
		fqdn := tgt.Host + "." + domain
		if res.Err != nil {
			summary.Results[i].Err = res.Err
			ctx.Metrics.DNSOutcome(string(OutcomeFailed))
			provisioning.LogWarning(ctx.Observer, phase, fqdn, "could not publish DNS record", res.Err)
			continue
		}
		outcome := summary.Results[i].Outcome
		ctx.Metrics.DNSOutcome(string(outcome))
		if outcome == OutcomeCreated {
			provisioning.LogResourceCreated(ctx.Observer, phase, "record", fqdn, tgt.Address)
		} else {
			provisioning.LogResourceUpdated(ctx.Observer, phase, "record", fqdn, tgt.Address)
		}
	}
	return summary
}

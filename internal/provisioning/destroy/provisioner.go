package destroy

import (
	"context"
	"strconv"
	"time"

	"github.com/harborwave/harbor-wave/internal/metrics"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/provisioning/dns"
	"github.com/harborwave/harbor-wave/internal/provisioning/fleet"
	"github.com/harborwave/harbor-wave/internal/util/async"
)

// Phase names.
const (
	PhaseDestroy = "destroy"
	PhaseDNS     = "dns-cleanup"
)

// Target is one droplet selected for destruction.
type Target struct {
	Instance   digitalocean.Instance
	Err        error
	DNSRemoved int
	DNSErr     error
}

// Destroyed reports whether the droplet is gone.
func (t Target) Destroyed() bool {
	return t.Err == nil
}

// Report aggregates a destroy run.
type Report struct {
	Targets []Target
}

// Destroyed counts droplets removed.
func (r *Report) Destroyed() int {
	n := 0
	for _, t := range r.Targets {
		if t.Destroyed() {
			n++
		}
	}
	return n
}

// Failed counts droplets that could not be removed.
func (r *Report) Failed() int {
	return len(r.Targets) - r.Destroyed()
}

// DNSRemoved counts A records deleted.
func (r *Report) DNSRemoved() int {
	n := 0
	for _, t := range r.Targets {
		n += t.DNSRemoved
	}
	return n
}

// DNSFailed counts destroyed droplets whose record removal failed.
func (r *Report) DNSFailed() int {
	n := 0
	for _, t := range r.Targets {
		if t.DNSErr != nil {
			n++
		}
	}
	return n
}

// Err returns a *provisioning.BatchError when any droplet or record removal
// failed. Destroy does not distinguish total from partial failure.
func (r *Report) Err() error {
	failed := r.Failed() + r.DNSFailed()
	if be := provisioning.NewBatchError("destroy", len(r.Targets)-r.Failed(), failed, false); be != nil {
		return be
	}
	return nil
}

// Provisioner destroys a resolved target set.
type Provisioner struct {
	report *Report
}

// NewProvisioner returns a provisioner for instances.
func NewProvisioner(instances []digitalocean.Instance) *Provisioner {
	targets := make([]Target, len(instances))
	for i, in := range instances {
		targets[i] = Target{Instance: in}
	}
	return &Provisioner{report: &Report{Targets: targets}}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "destroy"
}

// Report returns the run report.
func (p *Provisioner) Report() *Report {
	return p.report
}

// Provision destroys every target, then cleans up DNS when enabled.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	phases := []provisioning.Phase{provisioning.PhaseFunc(PhaseDestroy, p.destroy)}
	if ctx.Config.UseDNS() {
		phases = append(phases, provisioning.PhaseFunc(PhaseDNS, p.removeRecords))
	}
	if err := provisioning.NewPipeline(phases...).Run(ctx); err != nil {
		return err
	}
	return p.report.Err()
}

// Destroy resolves targets from args and destroys them. A failure to list
// the fleet returns a nil report. Otherwise the report is always returned,
// with a *provisioning.BatchError when anything failed.
func Destroy(ctx *provisioning.Context, args []string) (*Report, error) {
	start := time.Now()
	ctx = ctx.WithContext(ctx.Context)
	ctx.Observer = ctx.Observer.WithFields(provisioning.RunFields(ctx.Config.Tag))

	targets, err := fleet.ResolveDestroyTargets(ctx, ctx.Cloud, args, ctx.Config.Tag, ctx.Config.BaseName)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		ctx.Observer.Printf("no droplets matched, nothing to destroy")
		return &Report{}, nil
	}

	p := NewProvisioner(targets)
	err = p.Provision(ctx)

	ctx.Metrics.BatchDuration(metrics.OpDestroy, time.Since(start))
	if pushErr := ctx.Metrics.Push(ctx); pushErr != nil {
		provisioning.LogWarning(ctx.Observer, p.Name(), ctx.Config.Tag, "could not push metrics", pushErr)
	}
	return p.report, err
}

func (p *Provisioner) destroy(ctx *provisioning.Context) error {
	targets := p.report.Targets
	tasks := make([]async.Task, len(targets))
	for i := range targets {
		in := targets[i].Instance
		tasks[i] = async.Task{
			Name: in.Name,
			Func: func(c context.Context) error {
				provisioning.LogResourceDeleting(ctx.Observer, PhaseDestroy, "droplet", in.Name)
				return ctx.Cloud.DestroyInstance(c, in.ID)
			},
		}
	}

	for i, res := range async.RunBounded(ctx, ctx.Concurrency(), tasks) {
		t := &targets[i]
		t.Err = res.Err
		ctx.Metrics.InstanceResult(metrics.OpDestroy, res.Err)
		if res.Err != nil {
			provisioning.LogResourceFailed(ctx.Observer, PhaseDestroy, "droplet", t.Instance.Name, res.Err)
			continue
		}
		provisioning.LogResourceDeleted(ctx.Observer, PhaseDestroy, "droplet",
			t.Instance.Name+" ("+strconv.Itoa(t.Instance.ID)+")")
	}
	return nil
}

func (p *Provisioner) removeRecords(ctx *provisioning.Context) error {
	r := dns.NewReconciler(ctx.Cloud)
	domain := ctx.Config.Domain

	var (
		tasks []async.Task
		slots []int
	)
	for i := range p.report.Targets {
		t := &p.report.Targets[i]
		if !t.Destroyed() {
			continue
		}
		slots = append(slots, i)
		tasks = append(tasks, async.Task{
			Name: t.Instance.Name,
			Func: func(c context.Context) error {
				n, err := r.RemoveRecord(c, t.Instance.Name, domain)
				t.DNSRemoved = n
				return err
			},
		})
	}

	for j, res := range async.RunBounded(ctx, ctx.Concurrency(), tasks) {
		t := &p.report.Targets[slots[j]]
		if res.Err != nil {
			t.DNSErr = res.Err
			ctx.Metrics.DNSOutcome(string(dns.OutcomeFailed))
			provisioning.LogWarning(ctx.Observer, PhaseDNS, t.Instance.Name, "could not remove DNS record", res.Err)
			continue
		}
		ctx.Metrics.DNSOutcome(string(dns.OutcomeRemoved))
		provisioning.LogResourceDeleted(ctx.Observer, PhaseDNS, "record", t.Instance.Name)
	}
	return nil
}

package spawn

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/harborwave/harbor-wave/internal/metrics"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/provisioning/dns"
	"github.com/harborwave/harbor-wave/internal/provisioning/readiness"
	"github.com/harborwave/harbor-wave/internal/util/async"
)

// Phase names.
const (
	PhaseCreate = "create"
	PhaseAwait  = "await"
	PhaseDNS    = "dns"
)

var errNoAddress = errors.New("no address assigned")

// Provisioner runs one spawn batch.
type Provisioner struct {
	plan   *Plan
	report *Report
}

// NewProvisioner returns a provisioner for a prepared plan.
func NewProvisioner(plan *Plan) *Provisioner {
	members := make([]Member, len(plan.Members))
	copy(members, plan.Members)
	return &Provisioner{
		plan:   plan,
		report: &Report{Requested: plan.Count, Members: members},
	}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "spawn"
}

// Report returns the batch report. It is complete once Provision returns.
func (p *Provisioner) Report() *Report {
	return p.report
}

// Provision runs the create, await and dns phases.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	phases := []provisioning.Phase{provisioning.PhaseFunc(PhaseCreate, p.create)}
	if ctx.Config.Wait || ctx.Config.UseDNS() {
		phases = append(phases, provisioning.PhaseFunc(PhaseAwait, p.await))
	}
	if ctx.Config.UseDNS() {
		phases = append(phases, provisioning.PhaseFunc(PhaseDNS, p.publish))
	}
	if err := provisioning.NewPipeline(phases...).Run(ctx); err != nil {
		return err
	}
	return p.report.Err()
}

// Spawn checks preconditions, then creates n droplets. Precondition failures
// return a nil report. Otherwise the report is always returned, along with a
// *provisioning.BatchError when any creation failed.
func Spawn(ctx *provisioning.Context, n int) (*Report, error) {
	start := time.Now()
	ctx = ctx.WithContext(ctx.Context)
	ctx.Observer = ctx.Observer.WithFields(provisioning.RunFields(ctx.Config.Tag))

	plan, err := Prepare(ctx, n)
	if err != nil {
		return nil, err
	}

	p := NewProvisioner(plan)
	err = p.Provision(ctx)

	ctx.Metrics.BatchDuration(metrics.OpCreate, time.Since(start))
	if pushErr := ctx.Metrics.Push(ctx); pushErr != nil {
		provisioning.LogWarning(ctx.Observer, p.Name(), ctx.Config.Tag, "could not push metrics", pushErr)
	}
	return p.report, err
}

func (p *Provisioner) create(ctx *provisioning.Context) error {
	cfg := ctx.Config
	members := p.report.Members

	tasks := make([]async.Task, len(members))
	for i := range members {
		m := &members[i]
		tasks[i] = async.Task{
			Name: m.Name,
			Func: func(c context.Context) error {
				provisioning.LogResourceCreating(ctx.Observer, PhaseCreate, "droplet", m.Name)
				in, err := ctx.Cloud.CreateInstance(c, digitalocean.InstanceCreateOpts{
					Name:     m.Name,
					Region:   cfg.Region,
					Size:     cfg.Size,
					Image:    cfg.Template,
					SSHKeys:  []int{p.plan.SSHKey.ID},
					Tags:     p.plan.Tags,
					UserData: m.userData,
				})
				if err != nil {
					return err
				}
				m.Instance = in
				return nil
			},
		}
	}

	for i, res := range async.RunBounded(ctx, ctx.Concurrency(), tasks) {
		m := &members[i]
		ctx.Metrics.InstanceResult(metrics.OpCreate, res.Err)
		if res.Err != nil {
			m.CreateErr = res.Err
			provisioning.LogResourceFailed(ctx.Observer, PhaseCreate, "droplet", m.Name, res.Err)
			continue
		}
		provisioning.LogResourceCreated(ctx.Observer, PhaseCreate, "droplet", m.Name, strconv.Itoa(m.Instance.ID))
		if cfg.Project != "" {
			p.assign(ctx, m)
		}
	}

	if p.report.Created() == 0 {
		return p.report.Err()
	}
	return nil
}

// assign moves a new droplet into the configured project. Any failure is a
// warning; the droplet stays in the default project.
func (p *Provisioner) assign(ctx *provisioning.Context, m *Member) {
	err := ctx.Cloud.AssignToProject(ctx, m.Instance.ID, ctx.Config.Project)
	if err == nil {
		return
	}
	msg := "could not assign droplet to project " + ctx.Config.Project
	if errors.Is(err, digitalocean.ErrProjectNotFound) {
		msg = "project " + ctx.Config.Project + " not found, skipping assignment"
	}
	provisioning.LogWarning(ctx.Observer, PhaseCreate, m.Name, msg, err)
}

func (p *Provisioner) await(ctx *provisioning.Context) error {
	p.report.Waited = true

	var created []digitalocean.Instance
	for _, m := range p.report.Members {
		if m.Created() {
			created = append(created, *m.Instance)
		}
	}

	addresses := readiness.AwaitAddresses(ctx, ctx.Cloud, created,
		ctx.Timeouts.PollInterval, ctx.Timeouts.PollMaxTicks,
		readiness.WithConcurrency(ctx.Concurrency()),
		readiness.WithObserver(ctx.Observer),
		readiness.WithMetrics(ctx.Metrics),
	)

	for i := range p.report.Members {
		m := &p.report.Members[i]
		if !m.Created() {
			continue
		}
		if res, ok := addresses.Get(m.Instance.ID); ok {
			m.Address, m.AddressStatus = res.Address, res.Status
		}
	}
	return ctx.Err()
}

func (p *Provisioner) publish(ctx *provisioning.Context) error {
	p.report.DNS = true

	var (
		targets []dns.Target
		slots   []int
	)
	for i := range p.report.Members {
		m := &p.report.Members[i]
		if !m.Created() {
			continue
		}
		if m.Address == "" {
			m.DNS, m.DNSErr = dns.OutcomeFailed, errNoAddress
			provisioning.LogWarning(ctx.Observer, PhaseDNS, m.Name, "no address, skipping DNS record", nil)
			continue
		}
		targets = append(targets, dns.Target{Host: m.Host, Address: m.Address})
		slots = append(slots, i)
	}

	summary := dns.ReconcileAll(ctx, targets)
	for j, res := range summary.Results {
		m := &p.report.Members[slots[j]]
		m.DNS, m.DNSErr = res.Outcome, res.Err
	}
	return nil
}

package readiness

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/harborwave/harbor-wave/internal/metrics"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/util/async"
)

// Status is the outcome of waiting on one instance.
type Status string

const (
	// StatusReady means the instance has an address.
	StatusReady Status = "ready"
	// StatusTimeout means the tick budget ran out, or the wait was cancelled,
	// before an address appeared.
	StatusTimeout Status = "timeout"
)

// Result is the outcome for one instance.
type Result struct {
	InstanceID int
	Name       string
	Address    string
	Status     Status
	Ticks      int
	Waited     time.Duration
}

// Ready reports whether an address was assigned.
func (r Result) Ready() bool {
	return r.Status == StatusReady
}

// AddressMap holds one Result per instance ID. Each slot is written once.
type AddressMap struct {
	mu      sync.Mutex
	order   []int
	results map[int]Result
}

func newAddressMap(instances []digitalocean.Instance) *AddressMap {
	m := &AddressMap{results: make(map[int]Result, len(instances))}
	for _, in := range instances {
		m.order = append(m.order, in.ID)
	}
	return m
}

// record stores res unless a result for the same instance exists.
func (m *AddressMap) record(res Result) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[res.InstanceID]; ok {
		return false
	}
	m.results[res.InstanceID] = res
	return true
}

// Get returns the result for instance id.
func (m *AddressMap) Get(id int) (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.results[id]
	return res, ok
}

// Results returns all results in the order the instances were given.
func (m *AddressMap) Results() []Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Result, 0, len(m.order))
	for _, id := range m.order {
		if res, ok := m.results[id]; ok {
			out = append(out, res)
		}
	}
	return out
}

// Ready returns the results that got an address.
func (m *AddressMap) Ready() []Result {
	var out []Result
	for _, res := range m.Results() {
		if res.Ready() {
			out = append(out, res)
		}
	}
	return out
}

// TimedOut counts results without an address.
func (m *AddressMap) TimedOut() int {
	n := 0
	for _, res := range m.Results() {
		if !res.Ready() {
			n++
		}
	}
	return n
}

// Option configures AwaitAddresses.
type Option func(*poller)

// WithConcurrency bounds how many instances are polled at once.
func WithConcurrency(n int) Option {
	return func(p *poller) { p.limit = n }
}

// WithObserver reports per-instance progress to obs.
func WithObserver(obs provisioning.Observer) Option {
	return func(p *poller) { p.observer = obs }
}

// WithMetrics records address wait times on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(p *poller) { p.metrics = rec }
}

type poller struct {
	cloud    digitalocean.InstanceManager
	interval time.Duration
	maxTicks int
	limit    int
	observer provisioning.Observer
	metrics  *metrics.Recorder
}

const phase = "await"

// AwaitAddresses polls every instance independently until it reports an
// address or maxTicks fetches have been spent, then returns one Result per
// instance. A slow instance never holds up the others. A failed fetch costs
// one tick. Cancelling ctx ends every pending wait with StatusTimeout.
func AwaitAddresses(
	ctx context.Context,
	cloud digitalocean.InstanceManager,
	instances []digitalocean.Instance,
	interval time.Duration,
	maxTicks int,
	opts ...Option,
) *AddressMap {
	p := &poller{
		cloud:    cloud,
		interval: interval,
		maxTicks: maxTicks,
		limit:    async.DefaultLimit,
		observer: provisioning.NewDiscardObserver(),
	}
	for _, opt := range opts {
		opt(p)
	}

	results := newAddressMap(instances)
	tasks := make([]async.Task, 0, len(instances))
	for _, in := range instances {
		tasks = append(tasks, async.Task{
			Name: in.Name,
			Func: func(ctx context.Context) error {
				res := p.await(ctx, in)
				results.record(res)
				p.metrics.AddressWait(res.Waited, !res.Ready())
				return nil
			},
		})
	}

	for i, res := range async.RunBounded(ctx, p.limit, tasks) {
		// tasks skipped on cancellation never ran
		if res.Err != nil {
			results.record(Result{InstanceID: instances[i].ID, Name: instances[i].Name, Status: StatusTimeout})
		}
	}
	return results
}

func (p *poller) await(ctx context.Context, in digitalocean.Instance) Result {
	start := time.Now()
	res := Result{InstanceID: in.ID, Name: in.Name, Status: StatusTimeout}
	if in.HasAddress() {
		res.Address, res.Status = in.Address, StatusReady
		return res
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for res.Ticks < p.maxTicks {
		select {
		case <-ctx.Done():
			res.Waited = time.Since(start)
			return res
		case <-timer.C:
		}
		res.Ticks++

		current, err := p.cloud.GetInstance(ctx, in.ID)
		switch {
		case err != nil:
			provisioning.LogWarning(p.observer, phase, in.Name, "address poll failed", err)
		case current.HasAddress():
			res.Address, res.Status = current.Address, StatusReady
			res.Waited = time.Since(start)
			p.observer.Event(provisioning.Event{
				Type:     provisioning.EventResourceUpdated,
				Phase:    phase,
				Resource: in.Name,
				Message:  fmt.Sprintf("address assigned: %s", res.Address),
				Fields:   map[string]string{"id": strconv.Itoa(in.ID), "ticks": strconv.Itoa(res.Ticks)},
			})
			return res
		}
		timer.Reset(p.interval)
	}

	res.Waited = time.Since(start)
	provisioning.LogWarning(p.observer, phase, in.Name,
		fmt.Sprintf("no address after %d polls", res.Ticks), nil)
	return res
}

package spawn

import (
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/provisioning/dns"
	"github.com/harborwave/harbor-wave/internal/provisioning/readiness"
)

// Status classifies a finished batch.
type Status string

// Batch statuses.
const (
	StatusSuccess        Status = "success"
	StatusPartialFailure Status = "partial-failure"
	StatusTotalFailure   Status = "total-failure"
)

// Member is one sequence slot of a batch.
type Member struct {
	Sequence int
	// Name is the droplet name, fully qualified when DNS is enabled.
	Name string
	// Host is the DNS host label.
	Host string

	Instance  *digitalocean.Instance
	CreateErr error

	Address       string
	AddressStatus readiness.Status

	DNS    dns.Outcome
	DNSErr error

	userData string
}

// Created reports whether the droplet exists.
func (m Member) Created() bool {
	return m.Instance != nil
}

// Report is the outcome of a spawn.
type Report struct {
	Requested int
	Members   []Member
	// Waited is set when the address phase ran.
	Waited bool
	// DNS is set when the dns phase ran.
	DNS bool
}

// Created counts droplets that were created.
func (r *Report) Created() int {
	n := 0
	for _, m := range r.Members {
		if m.Created() {
			n++
		}
	}
	return n
}

// Failed counts droplets whose creation failed.
func (r *Report) Failed() int {
	return len(r.Members) - r.Created()
}

// TimedOut counts created droplets that got no address in time.
func (r *Report) TimedOut() int {
	n := 0
	for _, m := range r.Members {
		if m.AddressStatus == readiness.StatusTimeout {
			n++
		}
	}
	return n
}

// DNSFailed counts created droplets whose record was not published.
func (r *Report) DNSFailed() int {
	n := 0
	for _, m := range r.Members {
		if m.Created() && m.DNS == dns.OutcomeFailed {
			n++
		}
	}
	return n
}

// Status classifies the batch by creation results.
func (r *Report) Status() Status {
	switch {
	case r.Failed() == 0:
		return StatusSuccess
	case r.Created() == 0:
		return StatusTotalFailure
	default:
		return StatusPartialFailure
	}
}

// Err returns a *provisioning.BatchError for a batch with failures, or nil.
// Unpublished DNS records make an otherwise successful batch a partial
// failure without changing its Status.
func (r *Report) Err() error {
	if be := provisioning.NewBatchError("spawn", r.Created(), r.Failed(), true); be != nil {
		return be
	}
	if n := r.DNSFailed(); n > 0 {
		return provisioning.NewBatchError("dns", r.Created()-n, n, false)
	}
	return nil
}

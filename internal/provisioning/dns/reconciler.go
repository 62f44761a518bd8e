package dns

import (
	"context"
	"fmt"
	"strings"

	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/util/naming"
)

// DefaultTTL is short because fleet addresses churn.
const DefaultTTL = 360

// ErrRecordNotFound is returned by RemoveRecord when the host has no A record.
var ErrRecordNotFound = fmt.Errorf("%w: dns record", digitalocean.ErrNotFound)

// Outcome is the write Reconcile performed.
type Outcome string

const (
	// OutcomeCreated means a new record was added.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an existing record was rewritten.
	OutcomeUpdated Outcome = "updated"
	// OutcomeRemoved means records were deleted.
	OutcomeRemoved Outcome = "removed"
	// OutcomeFailed means the write did not happen.
	OutcomeFailed Outcome = "failed"
)

// Reconciler writes A records through the provider.
type Reconciler struct {
	cloud digitalocean.RecordManager
	ttl   int
}

// NewReconciler returns a Reconciler using DefaultTTL.
func NewReconciler(cloud digitalocean.RecordManager) *Reconciler {
	return &Reconciler{cloud: cloud, ttl: DefaultTTL}
}

// Reconcile points host's A record on domain at address. The first existing
// record is updated and any further A records with the same name are deleted,
// so the host resolves to address alone. With no record one is created.
func (r *Reconciler) Reconcile(ctx context.Context, host, address, domain string) (Outcome, error) {
	records, err := r.cloud.ListRecords(ctx, domain)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to list records of %s: %w", domain, err)
	}

	opts := digitalocean.RecordOpts{Name: host, Data: address, TTL: r.ttl}
	updated := false
	for _, rec := range records {
		if !isA(rec) || rec.Name != host {
			continue
		}
		if updated {
			if err := r.cloud.DeleteRecord(ctx, domain, rec.ID); err != nil {
				return OutcomeFailed, fmt.Errorf("failed to delete duplicate record %s.%s: %w", host, domain, err)
			}
			continue
		}
		if _, err := r.cloud.UpdateRecord(ctx, domain, rec.ID, opts); err != nil {
			return OutcomeFailed, fmt.Errorf("failed to update record %s.%s: %w", host, domain, err)
		}
		updated = true
	}
	if updated {
		return OutcomeUpdated, nil
	}

	if _, err := r.cloud.CreateRecord(ctx, domain, opts); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to create record %s.%s: %w", host, domain, err)
	}
	return OutcomeCreated, nil
}

// RemoveRecord deletes every A record on domain named after the leftmost
// label of name. It returns ErrRecordNotFound when there is none.
func (r *Reconciler) RemoveRecord(ctx context.Context, name, domain string) (int, error) {
	host := naming.HostLabel(name)

	records, err := r.cloud.ListRecords(ctx, domain)
	if err != nil {
		return 0, fmt.Errorf("failed to list records of %s: %w", domain, err)
	}

	removed := 0
	for _, rec := range records {
		if !isA(rec) || rec.Name != host {
			continue
		}
		if err := r.cloud.DeleteRecord(ctx, domain, rec.ID); err != nil {
			return removed, fmt.Errorf("failed to delete record %s.%s: %w", host, domain, err)
		}
		removed++
	}
	if removed == 0 {
		return 0, fmt.Errorf("%s.%s: %w", host, domain, ErrRecordNotFound)
	}
	return removed, nil
}

func isA(rec digitalocean.Record) bool {
	return strings.EqualFold(rec.Type, digitalocean.RecordTypeA)
}

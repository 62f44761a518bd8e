package dns

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	hwtest "github.com/harborwave/harbor-wave/internal/testing"
)

const domain = "example.com"

func TestReconcile_CreatesWhenAbsent(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain(domain)
	r := NewReconciler(f.Mock())

	outcome, err := r.Reconcile(context.Background(), "edge", "192.0.2.1", domain)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	recs := f.RecordsNamed(domain, "edge")
	require.Len(t, recs, 1)
	assert.Equal(t, "192.0.2.1", recs[0].Data)
	assert.Equal(t, DefaultTTL, recs[0].TTL)
}

func TestReconcile_UpdatesExisting(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain(domain)
	f.AddRecord(domain, "edge", "192.0.2.99")
	r := NewReconciler(f.Mock())

	outcome, err := r.Reconcile(context.Background(), "edge", "192.0.2.1", domain)

	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	recs := f.RecordsNamed(domain, "edge")
	require.Len(t, recs, 1)
	assert.Equal(t, "192.0.2.1", recs[0].Data)
}

func TestReconcile_RemovesDuplicateRecords(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain(domain)
	f.AddRecord(domain, "web", "192.0.2.98")
	f.AddRecord(domain, "web", "192.0.2.99")
	f.AddRecord(domain, "db", "192.0.2.50")
	r := NewReconciler(f.Mock())

	outcome, err := r.Reconcile(context.Background(), "web", "192.0.2.1", domain)

	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	recs := f.RecordsNamed(domain, "web")
	require.Len(t, recs, 1)
	assert.Equal(t, "192.0.2.1", recs[0].Data)
	assert.Len(t, f.RecordsNamed(domain, "db"), 1)
}

func TestReconcile_Idempotent(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain(domain)
	r := NewReconciler(f.Mock())

	first, err := r.Reconcile(context.Background(), "web0", "192.0.2.5", domain)
	require.NoError(t, err)
	second, err := r.Reconcile(context.Background(), "web0", "192.0.2.5", domain)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, first)
	assert.Equal(t, OutcomeUpdated, second)
	assert.Len(t, f.RecordsNamed(domain, "web0"), 1)
}

func TestReconcile_IgnoresOtherRecordTypes(t *testing.T) {
	t.Parallel()
	var created bool
	mock := &digitalocean.MockClient{
		ListRecordsFunc: func(context.Context, string) ([]digitalocean.Record, error) {
			return []digitalocean.Record{{ID: 1, Type: "CNAME", Name: "edge", Data: "other."}}, nil
		},
		UpdateRecordFunc: func(context.Context, string, int, digitalocean.RecordOpts) (*digitalocean.Record, error) {
			t.Error("CNAME record must not be updated")
			return nil, nil
		},
		CreateRecordFunc: func(_ context.Context, _ string, opts digitalocean.RecordOpts) (*digitalocean.Record, error) {
			created = true
			return &digitalocean.Record{Name: opts.Name}, nil
		},
	}

	outcome, err := NewReconciler(mock).Reconcile(context.Background(), "edge", "192.0.2.1", domain)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.True(t, created)
}

func TestReconcile_Errors(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	tests := []struct {
		name string
		mock *digitalocean.MockClient
	}{
		{"list fails", &digitalocean.MockClient{
			ListRecordsFunc: func(context.Context, string) ([]digitalocean.Record, error) { return nil, boom },
		}},
		{"create fails", &digitalocean.MockClient{
			CreateRecordFunc: func(context.Context, string, digitalocean.RecordOpts) (*digitalocean.Record, error) {
				return nil, boom
			},
		}},
		{"duplicate delete fails", &digitalocean.MockClient{
			ListRecordsFunc: func(context.Context, string) ([]digitalocean.Record, error) {
				return []digitalocean.Record{
					{ID: 2, Type: digitalocean.RecordTypeA, Name: "edge"},
					{ID: 3, Type: digitalocean.RecordTypeA, Name: "edge"},
				}, nil
			},
			UpdateRecordFunc: func(context.Context, string, int, digitalocean.RecordOpts) (*digitalocean.Record, error) {
				return &digitalocean.Record{ID: 2}, nil
			},
			DeleteRecordFunc: func(context.Context, string, int) error { return boom },
		}},
		{"update fails", &digitalocean.MockClient{
			ListRecordsFunc: func(context.Context, string) ([]digitalocean.Record, error) {
				return []digitalocean.Record{{ID: 2, Type: digitalocean.RecordTypeA, Name: "edge"}}, nil
			},
			UpdateRecordFunc: func(context.Context, string, int, digitalocean.RecordOpts) (*digitalocean.Record, error) {
				return nil, boom
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			outcome, err := NewReconciler(tt.mock).Reconcile(context.Background(), "edge", "192.0.2.1", domain)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, OutcomeFailed, outcome)
		})
	}
}

func TestRemoveRecord(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain(domain)
	f.AddRecord(domain, "web0", "192.0.2.1")
	f.AddRecord(domain, "web0", "192.0.2.2")
	f.AddRecord(domain, "web1", "192.0.2.3")
	r := NewReconciler(f.Mock())

	removed, err := r.RemoveRecord(context.Background(), "web0.example.com", domain)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, f.RecordsNamed(domain, "web0"))
	assert.Len(t, f.RecordsNamed(domain, "web1"), 1)
}

func TestRemoveRecord_NotFoundLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain(domain)
	f.AddRecord(domain, "web1", "192.0.2.3")
	r := NewReconciler(f.Mock())

	removed, err := r.RemoveRecord(context.Background(), "ghost", domain)

	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, err, digitalocean.ErrNotFound)
	assert.Zero(t, removed)
	assert.Len(t, f.RecordsNamed(domain, "web1"), 1)
	assert.Zero(t, f.RecordOps)
}

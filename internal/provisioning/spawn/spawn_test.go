package spawn

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborwave/harbor-wave/internal/payload"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/provisioning/dns"
	"github.com/harborwave/harbor-wave/internal/provisioning/readiness"
	hwtest "github.com/harborwave/harbor-wave/internal/testing"
	"github.com/harborwave/harbor-wave/internal/util/tags"
)

func TestSpawn_ThreeWithoutDNS(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture()
	f.AddressAfterPolls = 1
	cfg := hwtest.NewConfigBuilder().WithBaseName("web").Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	report, err := Spawn(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, report.Status())
	assert.Equal(t, []string{"web0", "web1", "web2"}, f.InstanceNames())
	assert.True(t, report.Waited)
	assert.False(t, report.DNS)
	assert.Zero(t, f.RecordOps)
	for _, m := range report.Members {
		assert.Equal(t, readiness.StatusReady, m.AddressStatus, m.Name)
		assert.NotEmpty(t, m.Address)
	}
}

func TestSpawn_SingleWithDNS(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain("example.com")
	cfg := hwtest.NewConfigBuilder().WithBaseName("edge").WithDomain("example.com").Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	report, err := Spawn(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"edge.example.com"}, f.InstanceNames())
	recs := f.RecordsNamed("example.com", "edge")
	require.Len(t, recs, 1)
	assert.Equal(t, report.Members[0].Address, recs[0].Data)
	assert.Equal(t, dns.DefaultTTL, recs[0].TTL)
	assert.Equal(t, dns.OutcomeCreated, report.Members[0].DNS)
}

func TestSpawn_CreateRequestCarriesMetadataAndTags(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "site.tar")
	require.NoError(t, os.WriteFile(path, []byte("blob"), 0o600))

	f := hwtest.NewCloudFixture()
	cfg := hwtest.NewConfigBuilder().
		WithBaseName("web").
		WithTag("wave-1").
		WithPayload(payload.FilePrefix + path).
		WithWait(false).
		Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	_, err := Spawn(ctx, 2)
	require.NoError(t, err)

	require.Len(t, f.CreateRequests, 2)
	for _, req := range f.CreateRequests {
		assert.Equal(t, []string{"wave-1", tags.ManagedBy}, req.Tags)
		assert.Equal(t, "4242", req.Image)
		assert.Equal(t, []int{11}, req.SSHKeys)
		assert.Equal(t, "nyc3", req.Region)

		md, err := payload.Decode(req.UserData)
		require.NoError(t, err)
		assert.Equal(t, 2, md.TotalVMs)
		assert.Equal(t, "blob", md.Payload)
		assert.Equal(t, "site.tar", md.PayloadFilename)
		assert.Equal(t, "web", md.BaseName)
	}
	sequences := []int{}
	for _, req := range f.CreateRequests {
		md, _ := payload.Decode(req.UserData)
		sequences = append(sequences, md.Sequence)
	}
	slices.Sort(sequences)
	assert.Equal(t, []int{0, 1}, sequences)
}

func TestSpawn_PartialFailure(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture()
	f.CreateErrors["web1"] = errors.New("droplet limit reached")
	cfg := hwtest.NewConfigBuilder().WithBaseName("web").Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	report, err := Spawn(ctx, 3)

	require.ErrorIs(t, err, provisioning.ErrPartialFailure)
	assert.Equal(t, StatusPartialFailure, report.Status())
	assert.Equal(t, 2, report.Created())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, []string{"web0", "web2"}, f.InstanceNames())
	assert.Error(t, report.Members[1].CreateErr)

	failures := hwtest.Recorder(t, ctx).EventsOfType(provisioning.EventResourceFailed)
	require.Len(t, failures, 1)
	assert.Equal(t, "web1", failures[0].Resource)
}

func TestSpawn_TotalFailureSkipsLaterPhases(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain("example.com")
	for _, n := range []string{"web0.example.com", "web1.example.com"} {
		f.CreateErrors[n] = errors.New("quota")
	}
	cfg := hwtest.NewConfigBuilder().WithBaseName("web").WithDomain("example.com").Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	report, err := Spawn(ctx, 2)

	require.ErrorIs(t, err, provisioning.ErrTotalFailure)
	var be *provisioning.BatchError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 2, be.Failed)
	assert.Equal(t, StatusTotalFailure, report.Status())
	assert.False(t, report.Waited)
	assert.Zero(t, f.GetCalls)
	assert.Zero(t, f.RecordOps)
}

func TestSpawn_Preconditions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		build   func(b *hwtest.ConfigBuilder) *hwtest.ConfigBuilder
		wantErr error
	}{
		{"zero count", 0, nil, provisioning.ErrConfiguration},
		{"empty base name", 1, func(b *hwtest.ConfigBuilder) *hwtest.ConfigBuilder { return b.WithBaseName("") }, provisioning.ErrConfiguration},
		{"no template", 1, func(b *hwtest.ConfigBuilder) *hwtest.ConfigBuilder { return b.WithTemplate("") }, provisioning.ErrConfiguration},
		{"invalid tag", 1, func(b *hwtest.ConfigBuilder) *hwtest.ConfigBuilder { return b.WithTag("has space") }, provisioning.ErrConfiguration},
		{"domain not registered", 2, func(b *hwtest.ConfigBuilder) *hwtest.ConfigBuilder { return b.WithDomain("nope.org") }, ErrDomainNotRegistered},
		{"payload unreadable", 2, func(b *hwtest.ConfigBuilder) *hwtest.ConfigBuilder {
			return b.WithPayload("FILE:/nonexistent/harbor-wave/payload")
		}, ErrPayloadUnreadable},
		{"ssh key out of range", 1, func(b *hwtest.ConfigBuilder) *hwtest.ConfigBuilder { return b.WithSSHKeyN(3) }, ErrSSHKeyIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := hwtest.NewConfigBuilder()
			if tt.build != nil {
				b = tt.build(b)
			}
			f := hwtest.NewCloudFixture()
			ctx := hwtest.NewProvisioningContext(t, b.Build(), f.Mock())

			report, err := Spawn(ctx, tt.n)

			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, provisioning.IsConfigurationError(err))
			assert.Nil(t, report)
			assert.Zero(t, f.Creates)
		})
	}
}

func TestSpawn_ProjectAssignment(t *testing.T) {
	t.Parallel()

	t.Run("existing project", func(t *testing.T) {
		t.Parallel()
		f := hwtest.NewCloudFixture().WithProject("staging")
		cfg := hwtest.NewConfigBuilder().WithProject("staging").WithWait(false).Build()
		ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

		report, err := Spawn(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "staging", f.Assigned[report.Members[0].Instance.ID])
	})

	t.Run("missing project is a warning", func(t *testing.T) {
		t.Parallel()
		f := hwtest.NewCloudFixture()
		cfg := hwtest.NewConfigBuilder().WithProject("ghost").WithWait(false).Build()
		ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

		report, err := Spawn(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Created())
		assert.Equal(t, 2, f.AssignCall)
		warnings := hwtest.Recorder(t, ctx).EventsOfType(provisioning.EventWarning)
		require.Len(t, warnings, 2)
		assert.Contains(t, warnings[0].Message, "not found")
	})
}

func TestSpawn_NoWaitSkipsPolling(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture()
	cfg := hwtest.NewConfigBuilder().WithWait(false).Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	report, err := Spawn(ctx, 2)

	require.NoError(t, err)
	assert.False(t, report.Waited)
	assert.Zero(t, f.GetCalls)
}

func TestSpawn_DNSForcesWait(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain("example.com")
	cfg := hwtest.NewConfigBuilder().WithDomain("example.com").WithWait(false).Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	report, err := Spawn(ctx, 1)

	require.NoError(t, err)
	assert.True(t, report.Waited)
	assert.True(t, report.DNS)
}

func TestSpawn_AddressTimeoutSkipsDNSAsPartialFailure(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain("example.com")
	f.AddressAfterPolls = -1
	cfg := hwtest.NewConfigBuilder().WithBaseName("web").WithDomain("example.com").Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	report, err := Spawn(ctx, 2)

	require.ErrorIs(t, err, provisioning.ErrPartialFailure)
	var be *provisioning.BatchError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "dns", be.Op)
	assert.Equal(t, 2, be.Failed)
	assert.Equal(t, StatusSuccess, report.Status())
	assert.Equal(t, 2, report.TimedOut())
	assert.Equal(t, 2, report.DNSFailed())
	assert.Zero(t, f.RecordOps)
}

func TestPrepare_Naming(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture().WithDomain("example.com")
	cfg := hwtest.NewConfigBuilder().WithBaseName("web").WithDomain("example.com").Build()
	ctx := hwtest.NewProvisioningContext(t, cfg, f.Mock())

	plan, err := Prepare(ctx, 2)

	require.NoError(t, err)
	require.Len(t, plan.Members, 2)
	assert.Equal(t, "web0.example.com", plan.Members[0].Name)
	assert.Equal(t, "web0", plan.Members[0].Host)
	assert.Equal(t, "web1.example.com", plan.Members[1].Name)
	assert.Equal(t, 11, plan.SSHKey.ID)
	assert.Zero(t, f.Creates)
}

func TestReport_Err(t *testing.T) {
	t.Parallel()
	created := func(outcome dns.Outcome) Member {
		return Member{Instance: &digitalocean.Instance{ID: 1}, DNS: outcome}
	}
	tests := []struct {
		name    string
		members []Member
		want    error
	}{
		{"all created", []Member{created(""), created("")}, nil},
		{"dns published", []Member{created(dns.OutcomeCreated), created(dns.OutcomeUpdated)}, nil},
		{"one dns failed", []Member{created(dns.OutcomeCreated), created(dns.OutcomeFailed)}, provisioning.ErrPartialFailure},
		{"every dns failed", []Member{created(dns.OutcomeFailed)}, provisioning.ErrPartialFailure},
		{"create failed", []Member{created(""), {}}, provisioning.ErrPartialFailure},
		{"nothing created", []Member{{}, {}}, provisioning.ErrTotalFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &Report{Requested: len(tt.members), Members: tt.members}
			err := r.Err()
			if tt.want == nil {
				assert.NoError(t, err)
				assert.Equal(t, StatusSuccess, r.Status())
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

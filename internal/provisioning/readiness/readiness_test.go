package readiness

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	hwtest "github.com/harborwave/harbor-wave/internal/testing"
)

func created(f *hwtest.CloudFixture, names ...string) []digitalocean.Instance {
	var out []digitalocean.Instance
	for _, n := range names {
		f.AddInstance(n, "", "harborwave")
		in, _ := f.Instance(n)
		out = append(out, in)
	}
	return out
}

func TestAwaitAddresses_AllReady(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture()
	f.AddressAfterPolls = 2
	instances := created(f, "web0", "web1", "web2")

	got := AwaitAddresses(context.Background(), f.Mock(), instances, time.Millisecond, 10)

	results := got.Results()
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, instances[i].ID, res.InstanceID)
		assert.True(t, res.Ready(), res.Name)
		assert.NotEmpty(t, res.Address)
		assert.Equal(t, 3, res.Ticks)
	}
	assert.Zero(t, got.TimedOut())
}

func TestAwaitAddresses_NeverAssignedTimesOut(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture()
	f.AddressAfterPolls = -1
	instances := created(f, "slow")
	obs := hwtest.NewRecordingObserver()

	got := AwaitAddresses(context.Background(), f.Mock(), instances, time.Millisecond, 4, WithObserver(obs))

	res, ok := got.Get(instances[0].ID)
	require.True(t, ok)
	assert.Equal(t, StatusTimeout, res.Status)
	assert.Equal(t, 4, res.Ticks)
	assert.Equal(t, 4, f.GetCalls)
	assert.Len(t, obs.EventsOfType(provisioning.EventWarning), 1)
}

func TestAwaitAddresses_SlowInstanceDoesNotBlockOthers(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	mock := &digitalocean.MockClient{
		GetInstanceFunc: func(_ context.Context, id int) (*digitalocean.Instance, error) {
			calls.Add(1)
			if id == 1 {
				return &digitalocean.Instance{ID: id}, nil
			}
			return &digitalocean.Instance{ID: id, Address: "198.51.100.2"}, nil
		},
	}
	instances := []digitalocean.Instance{{ID: 1, Name: "slow"}, {ID: 2, Name: "fast"}}

	got := AwaitAddresses(context.Background(), mock, instances, time.Millisecond, 5, WithConcurrency(1))

	slow, _ := got.Get(1)
	fast, _ := got.Get(2)
	assert.Equal(t, StatusTimeout, slow.Status)
	assert.Equal(t, "198.51.100.2", fast.Address)
	assert.Len(t, got.Ready(), 1)
	assert.Equal(t, int32(6), calls.Load())
}

func TestAwaitAddresses_TransientErrorCostsOneTick(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	mock := &digitalocean.MockClient{
		GetInstanceFunc: func(_ context.Context, id int) (*digitalocean.Instance, error) {
			if calls.Add(1) == 1 {
				return nil, digitalocean.ErrProviderUnavailable
			}
			return &digitalocean.Instance{ID: id, Address: "192.0.2.10"}, nil
		},
	}

	got := AwaitAddresses(context.Background(), mock, []digitalocean.Instance{{ID: 7, Name: "w"}}, time.Millisecond, 3)

	res, _ := got.Get(7)
	assert.True(t, res.Ready())
	assert.Equal(t, 2, res.Ticks)
}

func TestAwaitAddresses_AlreadyAddressed(t *testing.T) {
	t.Parallel()
	mock := &digitalocean.MockClient{
		GetInstanceFunc: func(context.Context, int) (*digitalocean.Instance, error) {
			return nil, errors.New("must not be called")
		},
	}

	got := AwaitAddresses(context.Background(), mock,
		[]digitalocean.Instance{{ID: 3, Name: "pre", Address: "192.0.2.3"}}, time.Millisecond, 3)

	res, _ := got.Get(3)
	assert.True(t, res.Ready())
	assert.Zero(t, res.Ticks)
}

func TestAwaitAddresses_Cancelled(t *testing.T) {
	t.Parallel()
	f := hwtest.NewCloudFixture()
	f.AddressAfterPolls = -1
	instances := created(f, "a", "b")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	got := AwaitAddresses(ctx, f.Mock(), instances, time.Hour, 1000)

	assert.Less(t, time.Since(start), 5*time.Second)
	require.Len(t, got.Results(), 2)
	assert.Equal(t, 2, got.TimedOut())
}

func TestAddressMap_WriteOnce(t *testing.T) {
	t.Parallel()
	m := newAddressMap([]digitalocean.Instance{{ID: 1}})

	assert.True(t, m.record(Result{InstanceID: 1, Address: "first", Status: StatusReady}))
	assert.False(t, m.record(Result{InstanceID: 1, Address: "second", Status: StatusReady}))

	res, _ := m.Get(1)
	assert.Equal(t, "first", res.Address)
}

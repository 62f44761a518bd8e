package digitalocean

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_Defaults(t *testing.T) {
	t.Parallel()
	m := &MockClient{}
	ctx := context.Background()

	inst, err := m.CreateInstance(ctx, InstanceCreateOpts{Name: "web0", Region: "nyc3", Tags: []string{"t"}})
	require.NoError(t, err)
	assert.Equal(t, "web0", inst.Name)
	assert.Equal(t, []string{"t"}, inst.Tags)

	got, err := m.GetInstance(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, got.ID)
	assert.True(t, got.HasAddress())

	rec, err := m.CreateRecord(ctx, "example.com", RecordOpts{Name: "web0", Data: "1.2.3.4", TTL: 360})
	require.NoError(t, err)
	assert.Equal(t, RecordTypeA, rec.Type)

	assert.NoError(t, m.DestroyInstance(ctx, 1))
	assert.NoError(t, m.AssignToProject(ctx, 1, "p"))
}

func TestMockClient_CustomFunc(t *testing.T) {
	t.Parallel()
	expectedErr := errors.New("custom error")
	m := &MockClient{
		DestroyInstanceFunc: func(_ context.Context, id int) error {
			if id != 3 {
				t.Errorf("expected id 3, got %d", id)
			}
			return expectedErr
		},
	}

	assert.ErrorIs(t, m.DestroyInstance(context.Background(), 3), expectedErr)
}

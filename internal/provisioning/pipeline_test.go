package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	t.Parallel()
	p1 := PhaseFunc("phase-1", func(*Context) error { return nil })
	p2 := PhaseFunc("phase-2", func(*Context) error { return nil })

	pipeline := NewPipeline(p1, p2)

	require.NotNil(t, pipeline)
	assert.Len(t, pipeline.Phases, 2)
	assert.Equal(t, "phase-1", pipeline.Phases[0].Name())
	assert.Equal(t, "phase-2", pipeline.Phases[1].Name())
}

func TestPipeline_Run_Success(t *testing.T) {
	t.Parallel()
	var executed []string
	ctx := &Context{Context: context.Background(), Observer: NewLogObserver(testr.New(t))}

	pipeline := NewPipeline(
		PhaseFunc("create", func(*Context) error { executed = append(executed, "create"); return nil }),
		PhaseFunc("await", func(*Context) error { executed = append(executed, "await"); return nil }),
		PhaseFunc("dns", func(*Context) error { executed = append(executed, "dns"); return nil }),
	)

	require.NoError(t, pipeline.Run(ctx))
	assert.Equal(t, []string{"create", "await", "dns"}, executed)
}

func TestPipeline_Run_StopsAtFirstError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var executed []string
	ctx := &Context{Context: context.Background(), Observer: NewDiscardObserver()}

	pipeline := NewPipeline(
		PhaseFunc("create", func(*Context) error { executed = append(executed, "create"); return boom }),
		PhaseFunc("dns", func(*Context) error { executed = append(executed, "dns"); return nil }),
	)

	err := pipeline.Run(ctx)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "create phase failed")
	assert.Equal(t, []string{"create"}, executed)
}

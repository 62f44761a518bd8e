package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
)

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"no command", ErrNoCommand, ExitNoCommand},
		{"total failure", provisioning.NewBatchError("spawn", 0, 2, true), ExitTotalFailure},
		{"partial failure", provisioning.NewBatchError("spawn", 1, 1, true), ExitFailure},
		{"validation failed", fmt.Errorf("%w: 2 errors", provisioning.ErrValidationFailed), ExitTotalFailure},
		{"configuration", provisioning.Configurationf("base-name is empty"), ExitPrecondition},
		{"unknown item", config.ErrUnknownItem, ExitPrecondition},
		{"credential", fmt.Errorf("%w: %w", provisioning.ErrCredential, digitalocean.ErrInvalidCredential), ExitPrecondition},
		{"provider", digitalocean.ErrProviderUnavailable, ExitFailure},
		{"other", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

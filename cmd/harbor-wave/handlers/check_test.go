package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	hwtest "github.com/harborwave/harbor-wave/internal/testing"
	"github.com/harborwave/harbor-wave/internal/ui"
)

func TestCheckConfig_OK(t *testing.T) {
	env := newTestEnv(t, hwtest.NewConfigBuilder().Build())

	require.NoError(t, CheckConfig(context.Background(), env.opts))

	out := env.out.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "fleet@example.com")
	assert.Contains(t, out, "config OK")
}

func TestCheckConfig_Invalid(t *testing.T) {
	env := newTestEnv(t, hwtest.NewConfigBuilder().WithRegion("mars1").Build())

	err := CheckConfig(context.Background(), env.opts)

	require.ErrorIs(t, err, provisioning.ErrValidationFailed)
	assert.Equal(t, ExitTotalFailure, ExitCode(err))
	assert.Contains(t, env.out.String(), "INVALID")
	assert.Contains(t, env.errOut.String(), "1 item(s) invalid")
}

func TestCheckConfig_BadCredentialSkipsOnline(t *testing.T) {
	env := newTestEnv(t, hwtest.NewConfigBuilder().WithAPIKey("not-a-token").Build())

	err := CheckConfig(context.Background(), env.opts)

	require.ErrorIs(t, err, provisioning.ErrValidationFailed)
	assert.Zero(t, env.connects)
	assert.Contains(t, env.out.String(), "SKIPPED")
}

func TestCheckConfig_ProviderUnavailable(t *testing.T) {
	env := newTestEnv(t, hwtest.NewConfigBuilder().Build())
	env.cloud.AccountError = digitalocean.ErrProviderUnavailable

	err := CheckConfig(context.Background(), env.opts)

	require.ErrorIs(t, err, provisioning.ErrProviderUnavailable)
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestCheckConfig_JSON(t *testing.T) {
	env := newTestEnv(t, hwtest.NewConfigBuilder().Build())
	env.opts.Output = "json"

	require.NoError(t, CheckConfig(context.Background(), env.opts))
	assert.Contains(t, env.out.String(), `"field": "api-key"`)
	assert.Contains(t, env.out.String(), `"aborted": false`)
}

func TestTableOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		output string
		want   bool
	}{
		{"", true},
		{ui.FormatTable, true},
		{ui.FormatJSON, false},
		{ui.FormatYAML, false},
	}
	for _, tt := range tests {
		t.Run("output="+tt.output, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tableOutput(&Options{Output: tt.output}))
		})
	}
}

func TestCheckConfig_TableFlagValue(t *testing.T) {
	env := newTestEnv(t, hwtest.NewConfigBuilder().Build())
	env.opts.Output = ui.FormatTable

	require.NoError(t, CheckConfig(context.Background(), env.opts))
	assert.Contains(t, env.out.String(), "FIELD")
	assert.Contains(t, env.out.String(), "OK")
}

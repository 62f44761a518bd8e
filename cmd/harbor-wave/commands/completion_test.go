package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	cmd := Completion()

	require.NotNil(t, cmd)
	assert.Equal(t, "completion [bash|zsh|fish|powershell]", cmd.Use)
	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
	assert.True(t, cmd.DisableFlagsInUseLine)
}

func TestCompletion_Output(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := Root()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})

			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), "harbor-wave")
		})
	}
}

func TestSettingsCompletion(t *testing.T) {
	cmd := Set(nil)

	names, _ := cmd.ValidArgsFunction(cmd, nil, "")
	assert.Contains(t, names, "api-key")
	assert.Contains(t, names, "ssh-key-n")

	names, _ = cmd.ValidArgsFunction(cmd, []string{"region"}, "")
	assert.Empty(t, names)
}

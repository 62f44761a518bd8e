package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/handlers"
)

func TestVersion(t *testing.T) {
	cmd := Version()

	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Print version information", cmd.Short)
}

func TestSetVersionInfo(t *testing.T) {
	origVersion, origCommit, origDate, origAgent := version, commit, date, handlers.UserAgent
	defer func() {
		version, commit, date, handlers.UserAgent = origVersion, origCommit, origDate, origAgent
	}()

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")

	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)
	assert.Equal(t, "harbor-wave/1.2.3", handlers.UserAgent)
}

func TestVersion_Output(t *testing.T) {
	origVersion, origCommit, origDate, origAgent := version, commit, date, handlers.UserAgent
	defer func() {
		version, commit, date, handlers.UserAgent = origVersion, origCommit, origDate, origAgent
	}()
	SetVersionInfo("test-version", "test-commit", "test-date")

	root := Root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "harbor-wave test-version\n  commit: test-commit\n  built:  test-date\n", out.String())
}

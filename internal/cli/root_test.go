package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_RejectsInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "plan", "testdata/valid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_ListsSubcommands(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"plan", "emit", "validate", "graph", "history"} {
		assert.Contains(t, out, sub)
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "nope")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}

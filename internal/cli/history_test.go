package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_RequiresCatalogFlag(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)
}

func TestHistory_EmptyCatalog(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "catalog.db")

	out, _, err := execute(t, "history", "--catalog", catalogPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no recorded emissions")
}

func TestHistory_ListsEmissions(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "catalog.db")
	outDir := t.TempDir()

	_, _, err := execute(t, "--deterministic",
		"emit", "testdata/valid", "--out", outDir, "--name", "rel1", "--catalog", catalogPath)
	require.NoError(t, err)
	_, _, err = execute(t, "--deterministic",
		"emit", "testdata/valid", "--out", outDir, "--name", "rel1", "--catalog", catalogPath)
	require.NoError(t, err)

	out, _, err := execute(t, "history", "--catalog", catalogPath, "--name", "rel1")
	require.NoError(t, err)
	assert.Contains(t, out, "rel1")
	assert.Contains(t, out, "deterministic=true")

	// Identical input emitted twice: both rows carry the same content hash.
	var hashes []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		require.GreaterOrEqual(t, len(fields), 3)
		hashes = append(hashes, fields[2])
	}
	require.Len(t, hashes, 2)
	assert.Equal(t, hashes[0], hashes[1])
}

func TestHistory_LimitAndNameFilter(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "catalog.db")
	outDir := t.TempDir()

	_, _, err := execute(t,
		"emit", "testdata/valid", "--out", outDir, "--name", "alpha", "--catalog", catalogPath)
	require.NoError(t, err)
	_, _, err = execute(t,
		"emit", "testdata/valid", "--out", outDir, "--name", "beta", "--catalog", catalogPath)
	require.NoError(t, err)

	out, _, err := execute(t, "history", "--catalog", catalogPath, "--name", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "beta")

	out, _, err = execute(t, "history", "--catalog", catalogPath, "--limit", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1)
}

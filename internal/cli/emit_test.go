package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tada/pljava-sub016/internal/catalog"
)

func TestEmit_WritesDescriptorFiles(t *testing.T) {
	outDir := t.TempDir()

	out, _, err := execute(t, "--format", "json", "--deterministic",
		"emit", "testdata/valid", "--out", outDir, "--name", "demo")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	require.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result EmitResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, "demo", result.Name)
	assert.Len(t, result.ContentHash, 64)

	install, err := os.ReadFile(filepath.Join(outDir, "demo.install.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(install), "BEGIN postgresql\nCREATE SCHEMA app;\nEND postgresql;")

	remove, err := os.ReadFile(filepath.Join(outDir, "demo.remove.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(remove), "DROP SCHEMA app")
}

func TestEmit_DeterministicRunsAreByteIdentical(t *testing.T) {
	read := func() (string, string) {
		outDir := t.TempDir()
		_, _, err := execute(t, "--deterministic", "emit", "testdata/valid", "--out", outDir)
		require.NoError(t, err)
		install, err := os.ReadFile(filepath.Join(outDir, "deployment.install.sql"))
		require.NoError(t, err)
		remove, err := os.ReadFile(filepath.Join(outDir, "deployment.remove.sql"))
		require.NoError(t, err)
		return string(install), string(remove)
	}

	i1, r1 := read()
	i2, r2 := read()
	assert.Equal(t, i1, i2)
	assert.Equal(t, r1, r2)
}

func TestEmit_RecordsToCatalog(t *testing.T) {
	outDir := t.TempDir()
	catalogPath := filepath.Join(t.TempDir(), "catalog.db")

	_, _, err := execute(t, "--deterministic",
		"emit", "testdata/valid", "--out", outDir, "--name", "tracked", "--catalog", catalogPath)
	require.NoError(t, err)

	cat, err := catalog.Open(catalogPath)
	require.NoError(t, err)
	defer cat.Close()

	entry, err := cat.Latest(context.Background(), "tracked")
	require.NoError(t, err)
	assert.True(t, entry.Deterministic)
	assert.Equal(t, 3, entry.SnippetCount)
	assert.Contains(t, entry.InstallText, "CREATE SCHEMA app")
	assert.Len(t, entry.ContentHash, 64)
}

func TestEmit_CycleFailsBeforeWriting(t *testing.T) {
	outDir := t.TempDir()

	_, _, err := execute(t, "emit", "testdata/cycle", "--out", outDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial descriptor may be written")
}

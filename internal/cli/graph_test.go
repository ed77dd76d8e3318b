package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_PrintsEdges(t *testing.T) {
	out, _, err := execute(t, "graph", "testdata/valid")
	require.NoError(t, err)

	assert.Contains(t, out, "3 snippet(s), 2 edge(s)")
	assert.Contains(t, out, "app_schema -> base_type [schema:app]")
	assert.Contains(t, out, "app_schema -> greeting [schema:app]")
}

func TestGraph_JSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "graph", "testdata/valid")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	require.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result GraphResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, 3, result.SnippetCount)
	require.Len(t, result.Edges, 2)
	assert.Equal(t, "app_schema", result.Edges[0].Provider)
}

func TestGraph_CycleStillPrints(t *testing.T) {
	// Edge inspection works on cyclic inputs; only scheduling fails.
	out, _, err := execute(t, "graph", "testdata/cycle")
	require.NoError(t, err)
	assert.Contains(t, out, "chicken -> egg [chicken]")
	assert.Contains(t, out, "egg -> chicken [egg]")
}

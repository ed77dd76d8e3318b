package descriptor

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tada/pljava-sub016/internal/order"
	"github.com/tada/pljava-sub016/internal/snippet"
)

func mustSnippet(t *testing.T, def snippet.Definition) *snippet.Snippet {
	t.Helper()
	s, err := snippet.New(def)
	require.NoError(t, err)
	return s
}

func buildPlan(t *testing.T, snippets []*snippet.Snippet) *order.Plan {
	t.Helper()
	plan, err := order.Build(snippets, order.Options{
		Deterministic: true,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return plan
}

func TestRender_ImplementorEnvelope(t *testing.T) {
	plan := buildPlan(t, []*snippet.Snippet{
		mustSnippet(t, snippet.Definition{
			Name:        "schema",
			Implementor: "postgresql",
			Install:     []string{"CREATE SCHEMA app"},
			Remove:      []string{"DROP SCHEMA app"},
		}),
		mustSnippet(t, snippet.Definition{
			Name:    "bare",
			Install: []string{"CREATE TABLE t (id int)"},
			Remove:  []string{"DROP TABLE t"},
		}),
	})

	desc := Render(plan)

	// The bare snippet sorts first (absent implementor), unwrapped; the
	// implementor-owned statements get the conditional envelope.
	assert.Equal(t,
		"CREATE TABLE t (id int);\n"+
			"BEGIN postgresql\n"+
			"CREATE SCHEMA app;\n"+
			"END postgresql;\n",
		desc.InstallText())
	assert.Equal(t,
		"DROP TABLE t;\n"+
			"BEGIN postgresql\n"+
			"DROP SCHEMA app;\n"+
			"END postgresql;\n",
		desc.RemoveText())
}

func TestRender_MultipleStatementsKeepOrder(t *testing.T) {
	plan := buildPlan(t, []*snippet.Snippet{
		mustSnippet(t, snippet.Definition{
			Name:    "multi",
			Install: []string{"CREATE TABLE a (x int)", "CREATE INDEX ON a (x)"},
			Remove:  []string{"DROP TABLE a"},
		}),
	})

	desc := Render(plan)
	assert.Equal(t, "CREATE TABLE a (x int);\nCREATE INDEX ON a (x);\n", desc.InstallText())
}

func TestRender_SubsumedRemovalLeavesNoTrace(t *testing.T) {
	plan := buildPlan(t, []*snippet.Snippet{
		mustSnippet(t, snippet.Definition{
			Name:     "A",
			Install:  []string{"CREATE FUNCTION a()"},
			Remove:   []string{"DROP FUNCTION a()"},
			Provides: []string{"X"},
			Requires: []string{"Y"},
			Kind:     snippet.KindDeferrable,
		}),
		mustSnippet(t, snippet.Definition{
			Name:     "B",
			Install:  []string{"CREATE TYPE b"},
			Remove:   []string{"DROP TYPE b CASCADE"},
			Provides: []string{"Y"},
			Requires: []string{"X"},
			Kind:     snippet.KindCascading,
		}),
	})

	desc := Render(plan)
	assert.Equal(t, "DROP TYPE b CASCADE;\n", desc.RemoveText())
	assert.NotContains(t, desc.RemoveText(), "DROP FUNCTION a()")
	// The install half is unaffected by removal-direction subsumption.
	assert.Contains(t, desc.InstallText(), "CREATE FUNCTION a();")
}

func TestRender_ByteIdenticalAcrossRuns(t *testing.T) {
	make2 := func() *Descriptor {
		return Render(buildPlan(t, []*snippet.Snippet{
			mustSnippet(t, snippet.Definition{Name: "one", Implementor: "beta", Install: []string{"SELECT 1"}, Remove: []string{"SELECT -1"}}),
			mustSnippet(t, snippet.Definition{Name: "two", Implementor: "alpha", Install: []string{"SELECT 2"}, Remove: []string{"SELECT -2"}}),
		}))
	}

	first, second := make2(), make2()
	assert.Equal(t, first.InstallText(), second.InstallText())
	assert.Equal(t, first.RemoveText(), second.RemoveText())
	assert.Equal(t, first.Hash(), second.Hash())
}

func TestHash_SensitiveToContent(t *testing.T) {
	a := Render(buildPlan(t, []*snippet.Snippet{
		mustSnippet(t, snippet.Definition{Name: "x", Install: []string{"SELECT 1"}}),
	}))
	b := Render(buildPlan(t, []*snippet.Snippet{
		mustSnippet(t, snippet.Definition{Name: "x", Install: []string{"SELECT 2"}}),
	}))

	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.Len(t, a.Hash(), 64)
}

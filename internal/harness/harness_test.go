package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			_, err = RunWithGolden(t, scenario)
			assert.NoError(t, err)
		})
	}
}

func TestRun_ReportsOrderMismatch(t *testing.T) {
	s := &Scenario{
		Name:          "mismatch",
		Deterministic: true,
		Snippets: []SnippetDef{
			{Name: "one", Install: []string{"CREATE one"}, Remove: []string{"DROP one"}, Provides: []string{"one"}},
			{Name: "two", Install: []string{"CREATE two"}, Remove: []string{"DROP two"}, Requires: []string{"one"}},
		},
		ExpectInstallOrder: []string{"two", "one"},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install order")
}

func TestRun_ReportsMissingExpectedError(t *testing.T) {
	s := &Scenario{
		Name:          "should-fail",
		Deterministic: true,
		Snippets: []SnippetDef{
			{Name: "lonely", Install: []string{"CREATE lonely"}, Remove: []string{"DROP lonely"}},
		},
		ExpectError: "UNRESOLVED_CYCLE",
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduling succeeded")
}

func TestRun_WrongErrorCodeMismatch(t *testing.T) {
	s := &Scenario{
		Name:          "wrong-code",
		Deterministic: true,
		Snippets: []SnippetDef{
			{Name: "chicken", Install: []string{"CREATE chicken"}, Remove: []string{"DROP chicken"}, Provides: []string{"chicken"}, Requires: []string{"egg"}},
			{Name: "egg", Install: []string{"CREATE egg"}, Remove: []string{"DROP egg"}, Provides: []string{"egg"}, Requires: []string{"chicken"}},
		},
		ExpectError: "INTERNAL_CONSISTENCY",
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected error INTERNAL_CONSISTENCY")
}

func TestRun_SubsumedReported(t *testing.T) {
	s := &Scenario{
		Name:          "cascade",
		Deterministic: true,
		Snippets: []SnippetDef{
			{Name: "a", Kind: "deferrable", Install: []string{"CREATE a"}, Remove: []string{"DROP a"}, Provides: []string{"x"}, Requires: []string{"y"}},
			{Name: "b", Kind: "cascading", Install: []string{"CREATE b"}, Remove: []string{"DROP b CASCADE"}, Provides: []string{"y"}, Requires: []string{"x"}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Subsumed)
	assert.NotContains(t, result.Descriptor.RemoveText(), "DROP a")
}

package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the rendered descriptor
// halves against golden files. The golden files are stored in
// testdata/{scenario.Name}.install.golden and .remove.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for descriptor bytes: a scenario
// with Deterministic set must reproduce them exactly on every run.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if result.Descriptor == nil {
		// Expected-error scenarios render nothing to compare.
		return result, nil
	}

	g := goldie.New(t)
	g.Assert(t, scenario.Name+".install", []byte(result.Descriptor.InstallText()))
	g.Assert(t, scenario.Name+".remove", []byte(result.Descriptor.RemoveText()))

	return result, nil
}

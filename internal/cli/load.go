package cli

import (
	"errors"

	"github.com/tada/pljava-sub016/internal/manifest"
	"github.com/tada/pljava-sub016/internal/order"
	"github.com/tada/pljava-sub016/internal/snippet"
)

// loadSnippets loads a manifest directory in collect-all mode and reports
// every problem through the formatter. Returns an ExitError when loading
// failed.
func loadSnippets(f *OutputFormatter, dir string) ([]*snippet.Snippet, error) {
	result, loadErrors := manifest.Load(dir, manifest.LoadModeCollectAll)

	if len(loadErrors) > 0 {
		code := manifest.ErrCodeGeneric
		var loadErr *manifest.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			code = loadErr.Code
		}
		messages := make([]string, len(loadErrors))
		for i, e := range loadErrors {
			messages[i] = e.Error()
		}
		if err := f.Failure(code, messages[0], messages); err != nil {
			return nil, err
		}
		return nil, NewExitError(ExitCommandError, "manifest loading failed")
	}

	f.VerboseLog("Loaded %d snippet(s) from %d CUE file(s) in %s", len(result.Snippets), result.FileCount, dir)
	return result.Snippets, nil
}

// buildPlan schedules the snippet set and reports scheduling failures
// through the formatter. Returns an ExitError on failure.
func buildPlan(f *OutputFormatter, snippets []*snippet.Snippet, deterministic bool) (*order.Plan, error) {
	plan, err := order.Build(snippets, order.Options{Deterministic: deterministic})
	if err != nil {
		var schedErr *order.ScheduleError
		if errors.As(err, &schedErr) {
			details := map[string]any{
				"direction": schedErr.Direction.String(),
				"snippets":  schedErr.Snippets,
				"tags":      schedErr.Tags,
			}
			if ferr := f.Failure(string(schedErr.Code), schedErr.Message, details); ferr != nil {
				return nil, ferr
			}
			return nil, WrapExitError(ExitFailure, "scheduling failed", err)
		}
		return nil, WrapExitError(ExitFailure, "scheduling failed", err)
	}
	return plan, nil
}

package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tada/pljava-sub016/internal/descriptor"
	"github.com/tada/pljava-sub016/internal/order"
)

// Result captures everything a scenario run produced.
type Result struct {
	InstallOrder []string
	RemoveOrder  []string
	Subsumed     []string
	Descriptor   *descriptor.Descriptor
}

// Run executes a scenario: builds the snippet set, schedules it, checks the
// scenario's expectations and renders the descriptor.
//
// Expectation failures are returned as errors so callers can decide whether
// they are test failures (harness tests) or report lines (CLI usage).
func Run(s *Scenario) (*Result, error) {
	snippets, err := s.buildSnippets()
	if err != nil {
		return nil, err
	}

	plan, err := order.Build(snippets, order.Options{
		Deterministic: s.Deterministic,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	})
	if err != nil {
		if s.ExpectError != "" {
			if matchErrorCode(err, s.ExpectError) {
				return &Result{}, nil
			}
			return nil, fmt.Errorf("scenario %s: expected error %s, got: %w", s.Name, s.ExpectError, err)
		}
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	if s.ExpectError != "" {
		return nil, fmt.Errorf("scenario %s: expected error %s, but scheduling succeeded", s.Name, s.ExpectError)
	}

	result := &Result{
		InstallOrder: names(plan.Install),
		RemoveOrder:  names(plan.Remove),
		Descriptor:   descriptor.Render(plan),
	}
	for _, sched := range plan.Remove {
		if sched.Subsumed() {
			result.Subsumed = append(result.Subsumed, sched.Name())
		}
	}

	if err := checkExpectations(s, result); err != nil {
		return nil, err
	}
	return result, nil
}

func checkExpectations(s *Scenario, r *Result) error {
	if len(s.ExpectInstallOrder) > 0 && !equalStrings(s.ExpectInstallOrder, r.InstallOrder) {
		return fmt.Errorf("scenario %s: install order %v, want %v", s.Name, r.InstallOrder, s.ExpectInstallOrder)
	}
	if len(s.ExpectRemoveOrder) > 0 && !equalStrings(s.ExpectRemoveOrder, r.RemoveOrder) {
		return fmt.Errorf("scenario %s: remove order %v, want %v", s.Name, r.RemoveOrder, s.ExpectRemoveOrder)
	}
	if len(s.ExpectSubsumed) > 0 && !equalStrings(s.ExpectSubsumed, r.Subsumed) {
		return fmt.Errorf("scenario %s: subsumed %v, want %v", s.Name, r.Subsumed, s.ExpectSubsumed)
	}
	return nil
}

func matchErrorCode(err error, code string) bool {
	switch code {
	case string(order.ErrCodeUnresolvedCycle):
		return order.IsUnresolvedCycle(err)
	case string(order.ErrCodeInternalConsistency):
		return order.IsInternalConsistency(err)
	default:
		return false
	}
}

func names(seq []*order.Scheduled) []string {
	out := make([]string, len(seq))
	for i, s := range seq {
		out[i] = s.Name()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

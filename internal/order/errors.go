package order

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tada/pljava-sub016/internal/graph"
	"github.com/tada/pljava-sub016/internal/snippet"
)

// ScheduleError represents a fatal scheduling failure.
//
// Both conditions abort the whole run with no partial output - a deployment
// descriptor is all-or-nothing:
//   - Unresolved cycle: no node is ready and no snippet volunteers to break
//     the cycle. User-fixable by adding provides/requires or marking a
//     snippet deferrable/cascading.
//   - Internal consistency: the tie-breaker met two distinct snippets it
//     cannot tell apart, or a cycle break nominated an illegal substitute.
//     Indicates a bug in graph construction or upstream generation, not a
//     user-fixable input problem.
type ScheduleError struct {
	// Code identifies the error category.
	Code ScheduleErrorCode

	// Message is a human-readable description.
	Message string

	// RunToken identifies the scheduling run.
	RunToken string

	// Direction is the ordering being built when the failure occurred.
	Direction Direction

	// Snippets names the offending snippets (cycle participants, or the
	// indistinguishable pair).
	Snippets []string

	// Tags lists the dependency tags involved, for cycle diagnostics.
	Tags []string

	// Err is the underlying cause, if any.
	Err error
}

// ScheduleErrorCode categorizes scheduling errors.
type ScheduleErrorCode string

const (
	// ErrCodeUnresolvedCycle indicates a dependency cycle no snippet broke.
	ErrCodeUnresolvedCycle ScheduleErrorCode = "UNRESOLVED_CYCLE"

	// ErrCodeInternalConsistency indicates duplicate generation or an
	// illegal cycle-break nomination.
	ErrCodeInternalConsistency ScheduleErrorCode = "INTERNAL_CONSISTENCY"
)

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if len(e.Snippets) > 0 {
		return fmt.Sprintf("%s: %s (run=%s, direction=%s, snippets=%v)", e.Code, e.Message, e.RunToken, e.Direction, e.Snippets)
	}
	return fmt.Sprintf("%s: %s (run=%s, direction=%s)", e.Code, e.Message, e.RunToken, e.Direction)
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// IsUnresolvedCycle returns true if the error is an unresolved-cycle error.
// Uses errors.As to handle wrapped errors.
func IsUnresolvedCycle(err error) bool {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnresolvedCycle
	}
	return false
}

// IsInternalConsistency returns true if the error is an
// internal-consistency error. Uses errors.As to handle wrapped errors.
func IsInternalConsistency(err error) bool {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Code == ErrCodeInternalConsistency
	}
	return false
}

// newUnresolvedCycleError builds the fatal cycle report from the nodes left
// unprocessed when the ready set drained. Snippet names and the union of
// their tags are sorted so the report is stable.
func newUnresolvedCycleError(runToken string, dir Direction, remaining []*graph.Node[*snippet.Snippet]) *ScheduleError {
	names := make([]string, 0, len(remaining))
	tagSet := make(map[string]struct{})
	for _, n := range remaining {
		names = append(names, n.Payload.Name())
		for _, t := range n.Payload.Provides() {
			tagSet[t.String()] = struct{}{}
		}
		for _, t := range n.Payload.Requires() {
			tagSet[t.String()] = struct{}{}
		}
	}
	sort.Strings(names)

	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return &ScheduleError{
		Code:      ErrCodeUnresolvedCycle,
		Message:   "dependency cycle with no volunteering snippet; mark a participant deferrable or cascading, or add an explicit break",
		RunToken:  runToken,
		Direction: dir,
		Snippets:  names,
		Tags:      tags,
	}
}

// newInternalConsistencyError wraps an internal failure (duplicate snippets
// under the tie-breaker, illegal nomination) in the scheduling taxonomy.
func newInternalConsistencyError(runToken string, dir Direction, message string, snippets []string, err error) *ScheduleError {
	return &ScheduleError{
		Code:      ErrCodeInternalConsistency,
		Message:   message,
		RunToken:  runToken,
		Direction: dir,
		Snippets:  snippets,
		Err:       err,
	}
}

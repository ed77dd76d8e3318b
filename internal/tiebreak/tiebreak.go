// Package tiebreak implements the strict deterministic ordering used to
// choose among equally eligible candidates: ready scheduler nodes, and
// ambiguous type-mapping candidates.
//
// A comparator here is a chain of comparison steps. Two distinct items that
// survive every step are not "equal" - they are a duplicate, which means an
// upstream generator produced the same output twice. The comparator refuses
// to return 0 for distinct items and surfaces a DuplicateError instead, so
// reproducible runs can never silently depend on input order.
package tiebreak

import (
	"errors"
	"fmt"
	"strings"
)

// Step compares two items; negative means a orders first.
type Step[T any] func(a, b T) int

// Comparator is a strict total order assembled from comparison steps.
type Comparator[T any] struct {
	// Steps are applied in sequence until one is decisive.
	Steps []Step[T]

	// Describe renders an item for duplicate diagnostics.
	Describe func(T) string
}

// Compare applies the step chain. It returns a DuplicateError when every
// step is indecisive.
func (c Comparator[T]) Compare(a, b T) (int, error) {
	for _, step := range c.Steps {
		if r := step(a, b); r != 0 {
			return r, nil
		}
	}
	return 0, &DuplicateError{Left: c.describe(a), Right: c.describe(b)}
}

// Min returns the least item under the comparator.
// An empty input is a caller bug and is reported as an error.
func (c Comparator[T]) Min(items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.New("tiebreak: no candidates")
	}
	best := items[0]
	for _, item := range items[1:] {
		r, err := c.Compare(item, best)
		if err != nil {
			return zero, err
		}
		if r < 0 {
			best = item
		}
	}
	return best, nil
}

func (c Comparator[T]) describe(v T) string {
	if c.Describe == nil {
		return fmt.Sprintf("%v", v)
	}
	return c.Describe(v)
}

// DuplicateError reports two syntactically distinct items that the
// comparator cannot tell apart. This is an internal-consistency failure:
// well-formed input never produces two identical candidates.
type DuplicateError struct {
	Left  string
	Right string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("tiebreak: indistinguishable candidates (duplicate generation?): %s / %s", e.Left, e.Right)
}

// IsDuplicate reports whether err is (or wraps) a DuplicateError.
func IsDuplicate(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}

// Strings is a plain lexicographic step over string projections.
func Strings[T any](key func(T) string) Step[T] {
	return func(a, b T) int {
		return strings.Compare(key(a), key(b))
	}
}

// OptionalStrings orders absent values first, then lexicographically.
// Presence and value come from the projection's second return.
func OptionalStrings[T any](key func(T) (string, bool)) Step[T] {
	return func(a, b T) int {
		av, aok := key(a)
		bv, bok := key(b)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		default:
			return strings.Compare(av, bv)
		}
	}
}

// StringSlices orders by length first (shorter before longer), then entry
// by entry lexicographically.
func StringSlices[T any](key func(T) []string) Step[T] {
	return func(a, b T) int {
		av, bv := key(a), key(b)
		if len(av) != len(bv) {
			if len(av) < len(bv) {
				return -1
			}
			return 1
		}
		for i := range av {
			if r := strings.Compare(av[i], bv[i]); r != 0 {
				return r
			}
		}
		return 0
	}
}

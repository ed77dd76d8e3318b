// Package typemap resolves ambiguous type-mapping candidates: when more
// than one (source type, target type) mapping is equally valid for a value,
// the winner must be the same on every run.
//
// Resolution reuses the scheduler's tie-break discipline: a strict chain of
// textual comparisons, with a genuine tie treated as an internal bug rather
// than silently picking either candidate.
package typemap

import (
	"errors"
	"fmt"

	"github.com/tada/pljava-sub016/internal/tiebreak"
)

// Candidate is one viable mapping, identified by the textual forms of the
// two types involved.
type Candidate struct {
	// Source is the textual form of the program-side type.
	Source string

	// Target is the textual form of the database-side type.
	Target string
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s -> %s", c.Source, c.Target)
}

// comparator orders candidates by target type first, then source type.
// Two candidates equal on both are the same mapping emitted twice.
func comparator() tiebreak.Comparator[Candidate] {
	return tiebreak.Comparator[Candidate]{
		Steps: []tiebreak.Step[Candidate]{
			tiebreak.Strings(func(c Candidate) string { return c.Target }),
			tiebreak.Strings(func(c Candidate) string { return c.Source }),
		},
		Describe: Candidate.String,
	}
}

// Compare exposes the strict order for callers that sort candidate lists.
func Compare(a, b Candidate) (int, error) {
	return comparator().Compare(a, b)
}

// Resolve picks the deterministic winner among equally valid candidates.
// An empty candidate set is a caller bug; a duplicate pair surfaces the
// underlying tiebreak.DuplicateError.
func Resolve(candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, errors.New("typemap: no candidates to resolve")
	}
	return comparator().Min(candidates)
}

package order

import "github.com/tada/pljava-sub016/internal/snippet"

// Scheduled is the per-run view of one snippet within an ordering.
//
// The snippet itself stays immutable; run-local adjustments (subsumption
// suppressing removal statements) land here and are discarded with the run.
type Scheduled struct {
	snip     *snippet.Snippet
	remove   []string
	subsumed bool
}

func newScheduled(s *snippet.Snippet) *Scheduled {
	return &Scheduled{snip: s, remove: s.Remove()}
}

// Snippet returns the underlying immutable snippet.
func (s *Scheduled) Snippet() *snippet.Snippet { return s.snip }

// Name returns the snippet name.
func (s *Scheduled) Name() string { return s.snip.Name() }

// Install returns the ordered install statements.
func (s *Scheduled) Install() []string { return s.snip.Install() }

// Remove returns the removal statements as adjusted for this run.
// A subsumed snippet contributes none: its object is already gone by the
// time its slot in the ordering is reached.
func (s *Scheduled) Remove() []string {
	return append([]string(nil), s.remove...)
}

// Subsumed reports whether another snippet's cascading removal pre-empted
// this snippet's own removal statements.
func (s *Scheduled) Subsumed() bool { return s.subsumed }

// subsume is the one-shot notification that a cascading removal covers this
// snippet. Idempotent; fires before the scheduler reads Remove for output.
func (s *Scheduled) subsume() {
	if s.subsumed {
		return
	}
	s.subsumed = true
	s.remove = nil
}

// Package snippet models the generated command bundles that the scheduler
// orders: each snippet carries the SQL to install and remove one database
// object, plus the dependency tags that relate it to its siblings.
//
// Snippets are immutable once constructed. The scheduler never edits a
// snippet; subsumption adjustments happen on the per-run scheduled view
// (see internal/order), so one snippet set can be planned repeatedly.
package snippet

import (
	"fmt"

	"github.com/tada/pljava-sub016/internal/tag"
)

// Definition is the raw material for a snippet, as decoded from a manifest
// or assembled by a generator. Statement strings carry no trailing
// semicolons; the descriptor renderer adds statement terminators.
type Definition struct {
	// Name identifies the snippet in diagnostics and orderings.
	Name string

	// Implementor is the optional grouping key. Statements of an
	// implementor-owned snippet are wrapped in a conditional envelope when
	// rendered, and the snippet implicitly provides the implementor's tag.
	Implementor string

	// Install and Remove are the ordered statement lists.
	Install []string
	Remove  []string

	// Provides and Requires are explicit tag names.
	Provides []string
	Requires []string

	Kind Kind
}

// Snippet is an immutable generated unit.
type Snippet struct {
	name        string
	implementor string
	install     []string
	remove      []string
	provides    []tag.Tag
	requires    []tag.Tag
	kind        Kind
}

// New validates a definition and builds an immutable snippet.
// The provided tag set always includes the implicit implementor tag when an
// implementor key is present.
func New(def Definition) (*Snippet, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("snippet name must not be empty")
	}
	if def.Kind < KindOrdinary || def.Kind > KindCascading {
		return nil, fmt.Errorf("snippet %s: invalid kind %d", def.Name, int(def.Kind))
	}

	s := &Snippet{
		name:        def.Name,
		implementor: def.Implementor,
		install:     copyStrings(def.Install),
		remove:      copyStrings(def.Remove),
		kind:        def.Kind,
	}

	seen := make(map[tag.Tag]struct{})
	addProvide := func(t tag.Tag) {
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		s.provides = append(s.provides, t)
	}
	for _, name := range def.Provides {
		addProvide(tag.New(name))
	}
	if def.Implementor != "" {
		addProvide(tag.ForImplementor(def.Implementor))
	}

	seenReq := make(map[tag.Tag]struct{})
	for _, name := range def.Requires {
		t := tag.New(name)
		if _, dup := seenReq[t]; dup {
			continue
		}
		seenReq[t] = struct{}{}
		s.requires = append(s.requires, t)
	}

	return s, nil
}

// Name returns the snippet's diagnostic identifier.
func (s *Snippet) Name() string { return s.name }

// Implementor returns the grouping key and whether one is present.
func (s *Snippet) Implementor() (string, bool) {
	return s.implementor, s.implementor != ""
}

// Install returns a copy of the ordered install statements.
func (s *Snippet) Install() []string { return copyStrings(s.install) }

// Remove returns a copy of the ordered removal statements.
func (s *Snippet) Remove() []string { return copyStrings(s.remove) }

// Provides returns a copy of the provided tags, implicit implementor tag
// included.
func (s *Snippet) Provides() []tag.Tag {
	return append([]tag.Tag(nil), s.provides...)
}

// Requires returns a copy of the required tags.
func (s *Snippet) Requires() []tag.Tag {
	return append([]tag.Tag(nil), s.requires...)
}

// Kind returns the snippet's cycle-break behavior.
func (s *Snippet) Kind() Kind { return s.kind }

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}

// Package tag defines dependency tags: opaque, comparable labels that
// connect snippets providing a capability to snippets requiring it.
//
// Tags come in two flavors. Explicit tags are attached by a snippet author
// ("function:hello", "schema:app"). Implicit tags are derived from a
// snippet's implementor (grouping) key: a snippet owned by an implementor is
// considered to provide that implementor's tag, so other snippets can order
// themselves after the whole implementor group. The two flavors live in
// separate namespaces - an explicit tag never collides with an implicit one,
// even when the spelled names are equal.
package tag

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// flavor distinguishes explicit tags from implementor-derived ones.
type flavor int

const (
	flavorExplicit flavor = iota
	flavorImplementor
)

// Tag is an immutable, comparable dependency label.
// The zero value is not a valid tag; construct via New or ForImplementor.
type Tag struct {
	f    flavor
	name string
}

// New creates an explicit tag from a name.
// The name is trimmed and NFC-normalized so that visually identical
// spellings compare equal regardless of Unicode composition form.
func New(name string) Tag {
	return Tag{f: flavorExplicit, name: normalize(name)}
}

// ForImplementor derives the implicit tag for an implementor key.
//
// This is the single place where the implementor-wrapping concept and the
// dependency-ordering concept are coupled: a snippet carrying an implementor
// key provides exactly the tag returned here.
func ForImplementor(key string) Tag {
	return Tag{f: flavorImplementor, name: normalize(key)}
}

// IsImplementor reports whether the tag was derived from an implementor key.
func (t Tag) IsImplementor() bool {
	return t.f == flavorImplementor
}

// Name returns the normalized tag name without flavor decoration.
func (t Tag) Name() string {
	return t.name
}

// String renders the tag for diagnostics. Implementor tags are prefixed so
// error messages distinguish the two namespaces.
func (t Tag) String() string {
	if t.f == flavorImplementor {
		return "implementor:" + t.name
	}
	return t.name
}

func normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Sorted returns the string forms of tags in lexicographic order.
// Used wherever a tag set crosses into user-visible output.
func Sorted(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	sort.Strings(out)
	return out
}

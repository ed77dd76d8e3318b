package snippet

import "fmt"

// Kind selects a snippet's cycle-break and subsumption behavior.
//
// The scheduler matches on the kind instead of calling an open-ended hook
// interface, so the full set of behaviors is closed and visible here:
//
//   - KindOrdinary never volunteers to break a cycle.
//   - KindDeferrable may break an installation cycle by nominating itself:
//     its requirements can be satisfied after installation (e.g., a routine
//     body that is only resolved on first call).
//   - KindCascading may break a removal cycle by nominating itself: its
//     removal statement cascades, removing every object that depends on it.
//     Snippets covered by the cascade are subsumed - their own removal
//     statements are suppressed so the descriptor does not drop the same
//     object twice.
type Kind int

const (
	KindOrdinary Kind = iota
	KindDeferrable
	KindCascading
)

var kindNames = map[Kind]string{
	KindOrdinary:   "ordinary",
	KindDeferrable: "deferrable",
	KindCascading:  "cascading",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a manifest kind string to a Kind.
// The empty string maps to KindOrdinary.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "ordinary":
		return KindOrdinary, nil
	case "deferrable":
		return KindDeferrable, nil
	case "cascading":
		return KindCascading, nil
	default:
		return KindOrdinary, fmt.Errorf("unknown snippet kind %q (want ordinary, deferrable or cascading)", s)
	}
}

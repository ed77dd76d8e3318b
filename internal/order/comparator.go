package order

import (
	"fmt"

	"github.com/tada/pljava-sub016/internal/tiebreak"
)

// nodeComparator builds the strict total order used whenever several nodes
// are simultaneously eligible. The chain mirrors the reproducibility
// contract:
//
//  1. implementor key, absent first;
//  2. install statement list, shorter first, then entry by entry;
//  3. removal statement list, same rule.
//
// Two distinct snippets surviving every step are duplicate generation and
// surface as a tiebreak.DuplicateError, never as a silent equality.
func nodeComparator() tiebreak.Comparator[*schedNode] {
	return tiebreak.Comparator[*schedNode]{
		Steps: []tiebreak.Step[*schedNode]{
			tiebreak.OptionalStrings(func(n *schedNode) (string, bool) {
				return n.Payload.Implementor()
			}),
			tiebreak.StringSlices(func(n *schedNode) []string {
				return n.Payload.Install()
			}),
			tiebreak.StringSlices(func(n *schedNode) []string {
				return n.Payload.Remove()
			}),
		},
		Describe: func(n *schedNode) string {
			if impl, ok := n.Payload.Implementor(); ok {
				return fmt.Sprintf("%s (implementor %s)", n.Payload.Name(), impl)
			}
			return n.Payload.Name()
		},
	}
}

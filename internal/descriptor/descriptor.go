// Package descriptor renders a scheduled plan into deployment-descriptor
// text: the install half concatenates every snippet's install statements in
// install order, the remove half does the same with the (possibly
// subsume-adjusted) removal statements in removal order.
//
// Statements owned by an implementor are wrapped in a conditional envelope
// so the host only executes them when that implementor is active:
//
//	BEGIN <implementor>
//	<statement>;
//	END <implementor>;
//
// Rendering is a pure function of the plan's ordered sequences; with a
// deterministic plan the rendered bytes are identical across runs.
package descriptor

import (
	"strings"

	"github.com/tada/pljava-sub016/internal/order"
)

// Descriptor holds the two rendered halves.
type Descriptor struct {
	installText string
	removeText  string
}

// Render assembles both halves from a plan.
func Render(plan *order.Plan) *Descriptor {
	return &Descriptor{
		installText: renderHalf(plan.Install, (*order.Scheduled).Install),
		removeText:  renderHalf(plan.Remove, (*order.Scheduled).Remove),
	}
}

// InstallText returns the rendered install half.
func (d *Descriptor) InstallText() string { return d.installText }

// RemoveText returns the rendered remove half.
func (d *Descriptor) RemoveText() string { return d.removeText }

func renderHalf(seq []*order.Scheduled, statements func(*order.Scheduled) []string) string {
	var b strings.Builder
	for _, s := range seq {
		stmts := statements(s)
		if len(stmts) == 0 {
			// Fully subsumed removals (and statement-less snippets) leave
			// no trace in the rendered text.
			continue
		}
		impl, wrapped := s.Snippet().Implementor()
		for _, stmt := range stmts {
			if wrapped {
				b.WriteString("BEGIN ")
				b.WriteString(impl)
				b.WriteString("\n")
				b.WriteString(stmt)
				b.WriteString(";\nEND ")
				b.WriteString(impl)
				b.WriteString(";\n")
			} else {
				b.WriteString(stmt)
				b.WriteString(";\n")
			}
		}
	}
	return b.String()
}

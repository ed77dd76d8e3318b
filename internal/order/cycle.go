package order

import (
	"github.com/tada/pljava-sub016/internal/snippet"
	"github.com/tada/pljava-sub016/internal/tiebreak"
)

// breakCycle asks one blocked snippet - by kind - whether it can unblock the
// pass. A non-nil return nominates a substitute to emit next.
//
// The closed kind set replaces the original per-unit virtual hooks:
//   - deferrable snippets volunteer in the install direction (their unmet
//     requirements can be satisfied after installation),
//   - cascading snippets volunteer in the removal direction (their removal
//     statement cascades over whatever still depends on them),
//   - ordinary snippets always decline.
//
// A nominee must belong to this run and be unemitted; emit order for
// everything else is unaffected.
func (p *pass) breakCycle(n *schedNode) *schedNode {
	switch n.Payload.Kind() {
	case snippet.KindDeferrable:
		if p.dir == DirectionInstall {
			return n
		}
	case snippet.KindCascading:
		if p.dir == DirectionRemove {
			return n
		}
	}
	return nil
}

// resolveCycle polls the remaining nodes for a cycle-break nomination and
// returns the accepted nominee.
//
// With determinism requested, the volunteer set is reduced with the same
// tie-breaker as the ready set, so the broken cycle is independent of input
// iteration order. Otherwise the first volunteer in graph order wins.
//
// When every remaining snippet declines, the whole run fails with an
// unresolved-cycle error naming the participants and their tags.
func (p *pass) resolveCycle(deterministic bool, cmp tiebreak.Comparator[*schedNode]) (*schedNode, error) {
	var remaining, volunteers []*schedNode
	for _, n := range p.nodes {
		if p.emitted[n] {
			continue
		}
		remaining = append(remaining, n)
		if nominee := p.breakCycle(n); nominee != nil {
			if err := p.checkNominee(nominee); err != nil {
				return nil, err
			}
			volunteers = append(volunteers, nominee)
		}
	}

	if len(volunteers) == 0 {
		return nil, newUnresolvedCycleError(p.runToken, p.dir, remaining)
	}

	nominee := volunteers[0]
	if deterministic && len(volunteers) > 1 {
		min, err := cmp.Min(volunteers)
		if err != nil {
			return nil, newInternalConsistencyError(p.runToken, p.dir,
				"tie-breaker cannot order cycle volunteers", readyNames(volunteers), err)
		}
		nominee = min
	}

	p.logger.Debug("cycle broken",
		"run", p.runToken,
		"direction", p.dir.String(),
		"nominee", nominee.Payload.Name(),
		"remaining", len(remaining),
	)
	return nominee, nil
}

// checkNominee enforces the substitute-legality precondition: a nomination
// must name a node of this run that has not been emitted yet. Anything else
// is a scheduler bug, not a user error.
func (p *pass) checkNominee(nominee *schedNode) error {
	if _, ok := p.sched[nominee]; !ok {
		return newInternalConsistencyError(p.runToken, p.dir,
			"cycle break nominated a node outside this run", nil, nil)
	}
	if p.emitted[nominee] {
		return newInternalConsistencyError(p.runToken, p.dir,
			"cycle break nominated an already-emitted node", []string{nominee.Payload.Name()}, nil)
	}
	return nil
}

// subsumeCascade fires the one-shot subsume notification on every
// still-unemitted snippet the nominee's cascading removal reaches: the
// transitive dependents of what the nominee provides. Each covered snippet
// drops its own removal statements before they are read for output.
func (p *pass) subsumeCascade(nominee *schedNode) {
	seen := map[*schedNode]bool{nominee: true}
	frontier := []*schedNode{nominee}
	for len(frontier) > 0 {
		n := frontier[0]
		frontier = frontier[1:]
		for _, dep := range n.Dependents() {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			frontier = append(frontier, dep)
			if p.emitted[dep] {
				continue
			}
			p.sched[dep].subsume()
			p.logger.Debug("removal subsumed by cascade",
				"run", p.runToken,
				"cascading", nominee.Payload.Name(),
				"subsumed", dep.Payload.Name(),
			)
		}
	}
}

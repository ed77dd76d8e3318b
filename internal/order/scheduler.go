// Package order is the dependency-ordered scheduler: it takes an unordered
// snippet set and produces the two total orderings a deployment descriptor
// needs, one for installation and one for removal.
//
// Each pass is a Kahn-style reduction over the tag graph. When several nodes
// are ready at once and determinism is requested, a strict tie-breaker picks
// the next node, so identical unordered input yields byte-identical output
// across runs and process restarts. When no node is ready but unprocessed
// nodes remain, the pass asks the remaining snippets - by kind - whether one
// volunteers to break the cycle; in the removal direction a cascading
// volunteer additionally subsumes the snippets its cascade already removes.
package order

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/tada/pljava-sub016/internal/graph"
	"github.com/tada/pljava-sub016/internal/snippet"
	"github.com/tada/pljava-sub016/internal/tag"
)

// Options configures a scheduling run.
type Options struct {
	// Deterministic requests reproducible ready-set selection: identical
	// unordered input produces identical orderings regardless of input
	// iteration order. When false, any ready node may be taken.
	Deterministic bool

	// Logger receives debug-level scheduling traces. Nil uses slog.Default.
	Logger *slog.Logger
}

// Plan holds the two orderings produced by one scheduling run.
type Plan struct {
	// RunToken correlates log lines and errors for this run.
	RunToken string

	// Deterministic records whether the run used the tie-breaker.
	Deterministic bool

	// Install orders providers before requirers.
	Install []*Scheduled

	// Remove orders requirers before providers, subject to per-direction
	// cycle breaking and subsumption.
	Remove []*Scheduled
}

type schedNode = graph.Node[*snippet.Snippet]

// Build runs the scheduler over the snippet set and returns both orderings.
// The graph is constructed fresh and discarded with the run; no state is
// shared across calls.
func Build(snippets []*snippet.Snippet, opts Options) (*Plan, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runToken := uuid.NewString()

	g := graph.Build(snippets,
		func(s *snippet.Snippet) []tag.Tag { return s.Provides() },
		func(s *snippet.Snippet) []tag.Tag { return s.Requires() },
	)
	logger.Debug("dependency graph built",
		"run", runToken,
		"snippets", g.Len(),
	)

	install, err := schedule(g, DirectionInstall, opts.Deterministic, runToken, logger)
	if err != nil {
		return nil, err
	}
	remove, err := schedule(g, DirectionRemove, opts.Deterministic, runToken, logger)
	if err != nil {
		return nil, err
	}

	return &Plan{
		RunToken:      runToken,
		Deterministic: opts.Deterministic,
		Install:       install,
		Remove:        remove,
	}, nil
}

// Schedule runs a single-direction pass over the snippet set.
// Callers needing both orderings should prefer Build, which shares one
// graph across the two passes.
func Schedule(snippets []*snippet.Snippet, dir Direction, opts Options) ([]*Scheduled, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runToken := uuid.NewString()

	g := graph.Build(snippets,
		func(s *snippet.Snippet) []tag.Tag { return s.Provides() },
		func(s *snippet.Snippet) []tag.Tag { return s.Requires() },
	)
	return schedule(g, dir, opts.Deterministic, runToken, logger)
}

// pass is the per-direction scheduling state. It lives for one reduction
// and is discarded with it.
type pass struct {
	dir      Direction
	nodes    []*schedNode
	sched    map[*schedNode]*Scheduled
	pending  map[*schedNode]int // unemitted direction-appropriate predecessors
	emitted  map[*schedNode]bool
	ready    []*schedNode
	out      []*Scheduled
	runToken string
	logger   *slog.Logger
}

func schedule(g *graph.Graph[*snippet.Snippet], dir Direction, deterministic bool, runToken string, logger *slog.Logger) ([]*Scheduled, error) {
	p := &pass{
		dir:      dir,
		nodes:    g.Nodes(),
		sched:    make(map[*schedNode]*Scheduled),
		pending:  make(map[*schedNode]int),
		emitted:  make(map[*schedNode]bool),
		runToken: runToken,
		logger:   logger,
	}

	for _, n := range p.nodes {
		p.sched[n] = newScheduled(n.Payload)
		p.pending[n] = p.predecessorCount(n)
		if p.pending[n] == 0 {
			p.ready = append(p.ready, n)
		}
	}

	cmp := nodeComparator()

	for len(p.out) < len(p.nodes) {
		if len(p.ready) > 0 {
			var next *schedNode
			if deterministic {
				min, err := cmp.Min(p.ready)
				if err != nil {
					return nil, newInternalConsistencyError(runToken, dir,
						"tie-breaker cannot order ready snippets", readyNames(p.ready), err)
				}
				next = min
			} else {
				next = p.ready[len(p.ready)-1]
			}
			p.removeReady(next)
			p.emit(next)
			continue
		}

		// Ready set drained with nodes left: a cycle among the remainder.
		nominee, err := p.resolveCycle(deterministic, cmp)
		if err != nil {
			return nil, err
		}
		if p.dir == DirectionRemove && nominee.Payload.Kind() == snippet.KindCascading {
			p.subsumeCascade(nominee)
		}
		p.emit(nominee)
	}

	return p.out, nil
}

// predecessorCount counts the nodes that must be emitted before n in this
// direction. A self-loop counts itself, so a self-requiring snippet is
// never ready and falls through to cycle resolution.
func (p *pass) predecessorCount(n *schedNode) int {
	if p.dir == DirectionInstall {
		return n.DependencyCount()
	}
	return n.DependentCount()
}

func (p *pass) successors(n *schedNode) []*schedNode {
	if p.dir == DirectionInstall {
		return n.Dependents()
	}
	return n.Dependencies()
}

// emit appends n to the output and recomputes readiness of its successors.
func (p *pass) emit(n *schedNode) {
	p.out = append(p.out, p.sched[n])
	p.emitted[n] = true
	for _, succ := range p.successors(n) {
		if p.emitted[succ] {
			continue
		}
		p.pending[succ]--
		if p.pending[succ] == 0 {
			p.ready = append(p.ready, succ)
		}
	}
}

func (p *pass) removeReady(n *schedNode) {
	for i, r := range p.ready {
		if r == n {
			p.ready = append(p.ready[:i], p.ready[i+1:]...)
			return
		}
	}
}

func readyNames(ready []*schedNode) []string {
	names := make([]string, len(ready))
	for i, n := range ready {
		names[i] = n.Payload.Name()
	}
	return names
}

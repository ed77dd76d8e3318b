// Package graph builds the build-time dependency graph the scheduler walks:
// one node per payload, with edges resolved through a provides→requires tag
// index.
//
// Graphs are constructed fresh for every scheduling run and discarded with
// it; nodes carry no state beyond their edges.
package graph

import (
	"github.com/tada/pljava-sub016/internal/tag"
)

// Node pairs one payload with its resolved edges.
type Node[P any] struct {
	// Payload is the wrapped item (a snippet, or a type-mapping candidate).
	Payload P

	deps       map[*Node[P]]struct{} // providers this node requires
	dependents map[*Node[P]]struct{} // nodes requiring what this node provides
}

// Dependencies returns the nodes this node depends on.
// Order is unspecified; callers needing determinism must order downstream.
func (n *Node[P]) Dependencies() []*Node[P] {
	out := make([]*Node[P], 0, len(n.deps))
	for d := range n.deps {
		out = append(out, d)
	}
	return out
}

// Dependents returns the nodes that depend on this node.
func (n *Node[P]) Dependents() []*Node[P] {
	out := make([]*Node[P], 0, len(n.dependents))
	for d := range n.dependents {
		out = append(out, d)
	}
	return out
}

// DependencyCount returns the number of distinct predecessor nodes.
func (n *Node[P]) DependencyCount() int { return len(n.deps) }

// DependentCount returns the number of distinct successor nodes.
func (n *Node[P]) DependentCount() int { return len(n.dependents) }

// DependsOn reports whether n has an edge from dep.
func (n *Node[P]) DependsOn(dep *Node[P]) bool {
	_, ok := n.deps[dep]
	return ok
}

// Graph is the full node set plus the tag→providers index.
type Graph[P any] struct {
	nodes     []*Node[P] // creation order, one per input payload
	providers map[tag.Tag][]*Node[P]
}

// Build creates one node per payload and resolves edges: for every tag some
// payload requires, an edge is added from each provider of that tag to the
// requirer.
//
// A required tag with no provider contributes no edge and is not an error.
// A payload providing a tag it also requires produces a self-loop; the
// builder permits it and leaves it for the scheduler's cycle handling.
func Build[P any](payloads []P, provides, requires func(P) []tag.Tag) *Graph[P] {
	g := &Graph[P]{
		nodes:     make([]*Node[P], 0, len(payloads)),
		providers: make(map[tag.Tag][]*Node[P]),
	}

	for _, p := range payloads {
		n := &Node[P]{
			Payload:    p,
			deps:       make(map[*Node[P]]struct{}),
			dependents: make(map[*Node[P]]struct{}),
		}
		g.nodes = append(g.nodes, n)
		for _, t := range provides(p) {
			g.providers[t] = append(g.providers[t], n)
		}
	}

	for _, n := range g.nodes {
		for _, t := range requires(n.Payload) {
			for _, provider := range g.providers[t] {
				n.deps[provider] = struct{}{}
				provider.dependents[n] = struct{}{}
			}
		}
	}

	return g
}

// Nodes returns the node set in creation order.
func (g *Graph[P]) Nodes() []*Node[P] {
	return append([]*Node[P](nil), g.nodes...)
}

// Providers returns the nodes providing a tag, in creation order.
func (g *Graph[P]) Providers(t tag.Tag) []*Node[P] {
	return append([]*Node[P](nil), g.providers[t]...)
}

// Len returns the number of nodes.
func (g *Graph[P]) Len() int { return len(g.nodes) }

package order

import (
	"sort"

	"github.com/tada/pljava-sub016/internal/graph"
	"github.com/tada/pljava-sub016/internal/snippet"
	"github.com/tada/pljava-sub016/internal/tag"
)

// Edge is one resolved provides→requires relation, for inspection.
type Edge struct {
	Provider string `json:"provider"`
	Requirer string `json:"requirer"`
	Tag      string `json:"tag"`
}

// Edges resolves the dependency relation over a snippet set without
// scheduling it. The result is sorted (provider, requirer, tag) so output
// never depends on input or map iteration order.
func Edges(snippets []*snippet.Snippet) []Edge {
	g := graph.Build(snippets,
		func(s *snippet.Snippet) []tag.Tag { return s.Provides() },
		func(s *snippet.Snippet) []tag.Tag { return s.Requires() },
	)

	var edges []Edge
	for _, n := range g.Nodes() {
		for _, t := range n.Payload.Requires() {
			for _, provider := range g.Providers(t) {
				edges = append(edges, Edge{
					Provider: provider.Payload.Name(),
					Requirer: n.Payload.Name(),
					Tag:      t.String(),
				})
			}
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Provider != b.Provider {
			return a.Provider < b.Provider
		}
		if a.Requirer != b.Requirer {
			return a.Requirer < b.Requirer
		}
		return a.Tag < b.Tag
	})
	return edges
}

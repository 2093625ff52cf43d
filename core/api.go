// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only summary of a graph.
// Policy:
//   - No algorithms or hidden state here.

package core

import "sort"

// GraphStats is a read-only summary of a Graph.
type GraphStats struct {
	Weighted    bool
	AllowsLoops bool
	VertexCount int
	EdgeCount   int
	// Isolated counts vertices without any neighbor.
	Isolated int
	// TotalWeight is the sum of all logical edge weights.
	TotalWeight float64
}

// Stats returns a deterministic summary of configuration and size.
//
// Complexity:
//   - Time O(V log V + E log E), Space O(V) plus the returned struct.
func (g *Graph) Stats() *GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := GraphStats{
		Weighted:    g.weighted,
		AllowsLoops: g.allowLoops,
		VertexCount: len(g.vertices),
		EdgeCount:   g.edges,
	}
	// Sum in sorted order so the float total does not depend on map iteration.
	ids := make([]int, 0, len(g.vertices))
	for id := range g.vertices {
		if len(g.adjacency[id]) == 0 {
			stats.Isolated++
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, from := range ids {
		for _, to := range sortedNeighbors(g.adjacency[from]) {
			// Each edge is counted from its smaller endpoint.
			if e := g.adjacency[from][to]; e.From == from {
				stats.TotalWeight += e.Weight
			}
		}
	}

	return &stats
}

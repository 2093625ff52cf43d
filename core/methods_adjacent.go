// SPDX-License-Identifier: MIT

// File: methods_adjacent.go
// Role: Neighborhood queries.
// Determinism:
//   - NeighborIDs() is unique and sorted ascending.

package core

import "sort"

// NeighborIDs returns the sorted indices reachable from id in one step.
// A self-loop lists id itself.
//
// Errors:
//   - ErrVertexNotFound: if id is absent.
//
// Complexity: O(d log d) where d = deg(id).
func (g *Graph) NeighborIDs(id int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	return sortedNeighbors(g.adjacency[id]), nil
}

// sortedNeighbors lists the keys of one neighbor bucket. Caller holds mu.
func sortedNeighbors(nbrs map[int]*Edge) []int {
	ids := make([]int, 0, len(nbrs))
	for to := range nbrs {
		ids = append(ids, to)
	}
	sort.Ints(ids)

	return ids
}

// SPDX-License-Identifier: MIT

// File: methods_vertices.go
// Role: Vertex insertion & enumeration.
//
// Determinism:
//   - Vertices() returns indices sorted ascending.
//
// Concurrency:
//   - Vertex catalog and adjacency are protected by mu.
package core

import "sort"

// AddVertex inserts a vertex if missing (idempotent).
//
// Implementation:
//   - Stage 1: Validate non-negative index (ErrBadVertexID).
//   - Stage 2: Under the write lock, register the vertex and bootstrap an
//     empty neighbor bucket so isolated vertices are still enumerated.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddVertex(id int) error {
	if id < 0 {
		return ErrBadVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	addVertexLocked(g, id)

	return nil
}

// Vertices returns all vertex indices sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Vertices() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Ints(out)

	return out
}

// addVertexLocked registers id and its neighbor bucket. Caller holds mu.
func addVertexLocked(g *Graph, id int) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = struct{}{}
	g.adjacency[id] = make(map[int]*Edge)
}

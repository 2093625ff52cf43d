// SPDX-License-Identifier: MIT

// File: methods_edges.go
// Role: Edge upsert and weight lookup.
// Determinism:
//   - A repeated SetEdge on the same pair replaces the weight (last write wins).
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import "math"

// SetEdge inserts the undirected edge from-to or, when it already exists,
// replaces its weight. Missing endpoints are added automatically.
//
// Steps:
//  1. Validate indices, weight and loop policy.
//  2. Lock, ensure both endpoints exist.
//  3. If the pair is already linked, overwrite the weight and report replaced=true.
//  4. Otherwise allocate one Edge normalized so From <= To and link it under
//     both endpoints.
//
// Complexity: O(1) amortized.
func (g *Graph) SetEdge(from, to int, weight float64) (replaced bool, err error) {
	if from < 0 || to < 0 {
		return false, ErrBadVertexID
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return false, ErrBadWeight
	}
	if !g.weighted && weight != 0 {
		return false, ErrBadWeight
	}
	if from == to && !g.allowLoops {
		return false, ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	addVertexLocked(g, from)
	addVertexLocked(g, to)

	if e, ok := g.adjacency[from][to]; ok {
		e.Weight = weight
		return true, nil
	}

	e := &Edge{From: from, To: to, Weight: weight}
	if e.From > e.To {
		e.From, e.To = e.To, e.From
	}
	g.adjacency[from][to] = e
	g.adjacency[to][from] = e
	g.edges++

	return false, nil
}

// Weight returns the weight of the edge from-to, or ErrEdgeNotFound.
// Complexity: O(1).
func (g *Graph) Weight(from, to int) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.adjacency[from][to]
	if !ok {
		return 0, ErrEdgeNotFound
	}

	return e.Weight, nil
}

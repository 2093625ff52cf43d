// SPDX-License-Identifier: MIT

// Package core defines the central Graph and Edge types used to turn a mesh
// topology into a weighted adjacency structure, and provides thread-safe
// primitives for building, querying and cloning such graphs.
//
// Vertices are identified by non-negative integer indices. Edges are
// undirected and carry a float64 weight; every edge is reachable from both
// endpoints and shares a single *Edge record, so the mirrored weights can
// never diverge.
//
// This file declares Edge, Graph, GraphOption, sentinel errors, and the
// NewGraph constructor.
//
// Errors:
//
//	ErrBadVertexID     - vertex index is negative.
//	ErrVertexNotFound  - requested vertex does not exist.
//	ErrEdgeNotFound    - requested edge does not exist.
//	ErrBadWeight       - NaN, infinite or negative weight, or non-zero weight on an unweighted graph.
//	ErrLoopNotAllowed  - self-loop when loops are disabled.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrBadVertexID indicates that a vertex index is negative.
	ErrBadVertexID = errors.New("core: vertex index must be non-negative")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadWeight indicates a weight that is NaN, infinite, negative, or
	// non-zero on an unweighted graph.
	ErrBadWeight = errors.New("core: bad edge weight")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")
)

// Edge represents a connection between two vertices.
//
// From <= To always holds; the same record is reachable from both endpoints.
type Edge struct {
	// From is the smaller endpoint index.
	From int

	// To is the larger endpoint index.
	To int

	// Weight is the cost of traversing the edge.
	Weight float64
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithWeighted allows non-zero edge weights in the Graph.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is the core in-memory graph data structure.
//
// It supports weighted vs. unweighted edges and optional self-loops. Parallel edges are not stored: setting an edge that
// already exists replaces its weight (last write wins).
// mu guards every field below it.
type Graph struct {
	mu sync.RWMutex

	// Configuration flags
	weighted   bool // allow non-zero weights
	allowLoops bool // allow self-loops

	// Storage
	vertices map[int]struct{} // vertex catalog
	edges    int              // number of logical edges

	// adjacency[u][v] = adjacency[v][u] = edge.
	adjacency map[int]map[int]*Edge
}

// NewGraph creates an empty Graph with the given options.
// By default, Graph is unweighted, without loops.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[int]struct{}),
		adjacency: make(map[int]map[int]*Edge),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

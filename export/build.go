// SPDX-License-Identifier: MIT

// Package export turns a mesh snapshot into the weighted vertex graph
// document consumed by external pathfinding tools and writes it as JSON.
//
// Document layout:
//
//	{
//	    "verts": [ { "coords": [x, y, z], "place": "<label>" }, ... ],
//	    "graph": { "<index>": { "<neighbor>": { "weight": <distance> } } }
//	}
//
// Nodes are vertex indices, edge weights are Euclidean distances between
// endpoint coordinates in object space, and verts[i] belongs to index i.
//
// Errors:
//
//	ErrNonContiguousIndices - vertex indices are not exactly 0..N-1.
//	ErrUnknownEndpoint      - an edge references a vertex not in the snapshot.
package export

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pathgraph/core"
	"github.com/katalvlaran/pathgraph/mesh"
)

// Sentinel errors for graph export.
var (
	// ErrNonContiguousIndices indicates indices that are not a permutation
	// of 0..N-1; re-index the mesh first.
	ErrNonContiguousIndices = errors.New("export: vertex indices are not contiguous")

	// ErrUnknownEndpoint indicates an edge whose endpoint is not a vertex of
	// the snapshot.
	ErrUnknownEndpoint = errors.New("export: edge endpoint is not a vertex")
)

// Source is a read-only mesh snapshot. *mesh.Mesh implements it.
type Source interface {
	Vertices() []mesh.Vertex
	Edges() []mesh.Edge
}

// Labels resolves the place label of a vertex ID. *labels.Layer implements it.
type Labels interface {
	Get(id uint64) string
}

// Build produces the graph document for src. A nil lbl labels every vertex "".
//
// Implementation:
//   - Stage 1: Check that indices are exactly 0..N-1 and map IDs to indices.
//   - Stage 2: Add one graph node per index so isolated vertices survive.
//   - Stage 3: Upsert one undirected edge per mesh edge weighted by the
//     Euclidean distance; a repeated pair keeps the last weight.
//   - Stage 4: Emit vertex records in index order, the adjacency in
//     ascending index order and the graph summary.
//
// Complexity:
//   - Time O(V log V + E log E), Space O(V + E).
func Build(src Source, lbl Labels) (*Document, error) {
	verts := src.Vertices()
	n := len(verts)

	// Stage 1
	byIndex := make([]*mesh.Vertex, n)
	indexOf := make(map[uint64]int, n)
	for i := range verts {
		v := &verts[i]
		if v.Index < 0 || v.Index >= n || byIndex[v.Index] != nil {
			return nil, fmt.Errorf("%w: index %d of %d vertices", ErrNonContiguousIndices, v.Index, n)
		}
		byIndex[v.Index] = v
		indexOf[v.ID] = v.Index
	}

	// Stage 2
	g := core.NewGraph(core.WithWeighted(), core.WithLoops())
	for i := 0; i < n; i++ {
		if err := g.AddVertex(i); err != nil {
			return nil, fmt.Errorf("adding vertex %d: %w", i, err)
		}
	}

	// Stage 3
	dups := 0
	for _, e := range src.Edges() {
		a, ok := indexOf[e.A]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownEndpoint, e.A)
		}
		b, ok := indexOf[e.B]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownEndpoint, e.B)
		}
		w := mesh.Distance(byIndex[a].Co, byIndex[b].Co)
		replaced, err := g.SetEdge(a, b, w)
		if err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", a, b, err)
		}
		if replaced {
			dups++
		}
	}

	// Stage 4
	doc := &Document{
		Verts: make([]VertexRecord, n),
		Graph: make(Adjacency, n),
	}
	for i, v := range byIndex {
		rec := VertexRecord{Coords: v.Co.Array()}
		if lbl != nil {
			rec.Place = lbl.Get(v.ID)
		}
		doc.Verts[i] = rec
	}
	for _, u := range g.Vertices() {
		nbrs, err := g.NeighborIDs(u)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", u, err)
		}
		inner := make(map[int]EdgeData, len(nbrs))
		for _, v := range nbrs {
			w, err := g.Weight(u, v)
			if err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", u, v, err)
			}
			inner[v] = EdgeData{Weight: w}
		}
		doc.Graph[u] = inner
	}

	st := g.Stats()
	doc.Summary = Summary{
		Vertices:    st.VertexCount,
		Edges:       st.EdgeCount,
		Isolated:    st.Isolated,
		Duplicates:  dups,
		TotalWeight: st.TotalWeight,
	}

	return doc, nil
}

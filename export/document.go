// SPDX-License-Identifier: MIT

package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// VertexRecord is one entry of the "verts" array.
type VertexRecord struct {
	Coords [3]float64 `json:"coords"`
	Place  string     `json:"place"`
}

// EdgeData is the attribute object stored per neighbor.
type EdgeData struct {
	Weight float64 `json:"weight"`
}

// Adjacency maps a vertex index to its neighbors and the edge data towards
// each. Every vertex has an entry; isolated vertices map to an empty set.
//
// Keys are serialized as decimal strings in ascending numeric order so that
// equal snapshots encode to identical bytes.
type Adjacency map[int]map[int]EdgeData

// Document is the exported graph snapshot.
type Document struct {
	// Verts[i] describes the vertex with index i.
	Verts []VertexRecord `json:"verts"`
	// Graph is symmetric: Graph[u][v] == Graph[v][u].
	Graph Adjacency `json:"graph"`
	// Summary is filled by Build and is not part of the encoding.
	Summary Summary `json:"-"`
}

// Summary describes the graph a Document was built from.
type Summary struct {
	Vertices int
	// Edges counts undirected edges once; a self-loop counts once.
	Edges int
	// Isolated counts vertices without neighbors.
	Isolated int
	// Duplicates counts mesh edges that repeated an already linked pair.
	Duplicates  int
	TotalWeight float64
}

// MarshalJSON writes the adjacency with numerically ordered keys.
func (a Adjacency) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, u := range sortedKeys(a) {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(u)))
		buf.WriteString(":{")
		nbrs := a[u]
		for j, v := range sortedKeys(nbrs) {
			if j > 0 {
				buf.WriteByte(',')
			}
			data, err := json.Marshal(nbrs[v])
			if err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", u, v, err)
			}
			buf.WriteString(strconv.Quote(strconv.Itoa(v)))
			buf.WriteByte(':')
			buf.Write(data)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads an adjacency whose keys are decimal vertex indices.
func (a *Adjacency) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]EdgeData
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Adjacency, len(raw))
	for ku, nbrs := range raw {
		u, err := strconv.Atoi(ku)
		if err != nil {
			return fmt.Errorf("graph key %q: %w", ku, err)
		}
		inner := make(map[int]EdgeData, len(nbrs))
		for kv, e := range nbrs {
			v, err := strconv.Atoi(kv)
			if err != nil {
				return fmt.Errorf("graph key %q: %w", kv, err)
			}
			inner[v] = e
		}
		out[u] = inner
	}
	*a = out

	return nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}

// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"

	"github.com/katalvlaran/pathgraph/core"
)

// ExampleGraph demonstrates basic creation, mutation, and queries.
func ExampleGraph() {
	// 1) Create a weighted graph:
	g := core.NewGraph(core.WithWeighted())

	// 2) Add an isolated vertex and a triangle (edges auto-add vertices):
	_ = g.AddVertex(3)
	_, _ = g.SetEdge(0, 1, 1)
	_, _ = g.SetEdge(1, 2, 2)
	_, _ = g.SetEdge(2, 0, 1)

	// 3) Inspect:
	nbrs, _ := g.NeighborIDs(0)
	st := g.Stats()
	fmt.Println("Vertices:", g.Vertices())
	fmt.Println("Neighbors of 0:", nbrs)
	fmt.Println("Edges:", st.EdgeCount, "isolated:", st.Isolated)

	// 4) Overwrite a weight (last write wins):
	replaced, _ := g.SetEdge(0, 1, 4)
	w, _ := g.Weight(1, 0)
	fmt.Println("Replaced:", replaced, "weight:", w)

	// Output:
	// Vertices: [0 1 2 3]
	// Neighbors of 0: [1 2]
	// Edges: 3 isolated: 1
	// Replaced: true weight: 4
}

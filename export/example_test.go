// SPDX-License-Identifier: MIT

package export_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/pathgraph/export"
	"github.com/katalvlaran/pathgraph/labels"
	"github.com/katalvlaran/pathgraph/mesh"
)

// ExampleBuild exports a labelled two-vertex edge.
func ExampleBuild() {
	m := mesh.New("door")
	a := m.AddVertex(mesh.Vec3{X: 0, Y: 0, Z: 0})
	b := m.AddVertex(mesh.Vec3{X: 0, Y: 2, Z: 0})
	_ = m.AddEdge(a, b)

	layer := labels.NewLayer()
	layer.Set(b, "Hall")

	doc, err := export.Build(m, layer)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = export.Encode(os.Stdout, doc, export.WithIndent(2))

	// Output:
	// {
	//   "verts": [
	//     {
	//       "coords": [
	//         0,
	//         0,
	//         0
	//       ],
	//       "place": ""
	//     },
	//     {
	//       "coords": [
	//         0,
	//         2,
	//         0
	//       ],
	//       "place": "Hall"
	//     }
	//   ],
	//   "graph": {
	//     "0": {
	//       "1": {
	//         "weight": 2
	//       }
	//     },
	//     "1": {
	//       "0": {
	//         "weight": 2
	//       }
	//     }
	//   }
	// }
}

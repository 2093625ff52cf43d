// SPDX-License-Identifier: MIT

package export_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathgraph/export"
	"github.com/katalvlaran/pathgraph/labels"
	"github.com/katalvlaran/pathgraph/mesh"
)

// snapshot is a hand-built Source for cases a Mesh refuses to represent.
type snapshot struct {
	verts []mesh.Vertex
	edges []mesh.Edge
}

func (s snapshot) Vertices() []mesh.Vertex { return s.verts }
func (s snapshot) Edges() []mesh.Edge       { return s.edges }

func triangle(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New("tri")
	a := m.AddVertex(mesh.Vec3{X: 0, Y: 0, Z: 0})
	b := m.AddVertex(mesh.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(mesh.Vec3{X: 0, Y: 1, Z: 0})
	require.NoError(t, m.AddFace(a, b, c))
	return m
}

func TestBuildTriangle(t *testing.T) {
	doc, err := export.Build(triangle(t), nil)
	require.NoError(t, err)

	require.Len(t, doc.Verts, 3)
	require.Len(t, doc.Graph, 3)
	require.Equal(t, [3]float64{1, 0, 0}, doc.Verts[1].Coords)
	require.Equal(t, "", doc.Verts[1].Place)

	require.InDelta(t, 1.0, doc.Graph[0][1].Weight, 1e-12)
	require.InDelta(t, math.Sqrt2, doc.Graph[1][2].Weight, 1e-12)
	require.InDelta(t, 1.0, doc.Graph[0][2].Weight, 1e-12)
	require.Equal(t, 3, doc.Summary.Vertices)
	require.Equal(t, 3, doc.Summary.Edges)
	require.Zero(t, doc.Summary.Isolated)
	require.Zero(t, doc.Summary.Duplicates)
	require.InDelta(t, 2+math.Sqrt2, doc.Summary.TotalWeight, 1e-12)
}

func TestBuildIsSymmetricAndMatchesDistance(t *testing.T) {
	m := mesh.New("grid")
	var ids []uint64
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			ids = append(ids, m.AddVertex(mesh.Vec3{X: float64(x) * 1.5, Y: float64(y), Z: float64(x * y)}))
		}
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			i := y*3 + x
			require.NoError(t, m.AddFace(ids[i], ids[i+1], ids[i+4], ids[i+3]))
		}
	}

	doc, err := export.Build(m, nil)
	require.NoError(t, err)
	require.Len(t, doc.Graph, 9)
	require.Equal(t, m.EdgeCount(), doc.Summary.Edges)

	verts := m.Vertices()
	for u, nbrs := range doc.Graph {
		for v, e := range nbrs {
			require.Equal(t, e, doc.Graph[v][u], "edge %d-%d mirrors", u, v)
			require.InDelta(t, mesh.Distance(verts[u].Co, verts[v].Co), e.Weight, 1e-12)
		}
	}
}

func TestSingleIsolatedVertex(t *testing.T) {
	m := mesh.New("dot")
	m.AddVertex(mesh.Vec3{X: 2, Y: 3, Z: 4})

	doc, err := export.Build(m, nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Summary.Isolated)
	data, err := export.Marshal(doc, export.WithIndent(0))
	require.NoError(t, err)
	require.Equal(t, `{"verts":[{"coords":[2,3,4],"place":""}],"graph":{"0":{}}}`+"\n", string(data))
}

func TestLabelRoundTrip(t *testing.T) {
	m := triangle(t)
	require.NoError(t, m.SelectIndices(1))
	layer := labels.NewLayer()
	for _, v := range m.Selected() {
		layer.Set(v.ID, "Kitchen")
	}

	doc, err := export.Build(m, layer)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Encode(&buf, doc))
	back, err := export.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, "", back.Verts[0].Place)
	require.Equal(t, "Kitchen", back.Verts[1].Place)
	require.Equal(t, "", back.Verts[2].Place)
	require.Equal(t, doc.Graph, back.Graph)
}

func TestEncodingIsDeterministicAndNumericallyOrdered(t *testing.T) {
	m := mesh.New("line")
	var prev uint64
	for i := 0; i < 12; i++ {
		id := m.AddVertex(mesh.Vec3{X: float64(i)})
		if i > 0 {
			require.NoError(t, m.AddEdge(prev, id))
		}
		prev = id
	}

	first, err := export.Build(m, nil)
	require.NoError(t, err)
	a, err := export.Marshal(first)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := export.Build(m, nil)
		require.NoError(t, err)
		b, err := export.Marshal(again)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}

	s := string(a)
	require.Less(t, strings.Index(s, `"2": {`), strings.Index(s, `"10": {`), "keys sort numerically")
	require.Contains(t, s, "\n    \"verts\": [", "four-space indent")
}

func TestDuplicateEdgeLastWriteWins(t *testing.T) {
	src := snapshot{
		verts: []mesh.Vertex{
			{ID: 10, Index: 0, Co: mesh.Vec3{}},
			{ID: 11, Index: 1, Co: mesh.Vec3{X: 3}},
			{ID: 12, Index: 2, Co: mesh.Vec3{Y: 4}},
		},
		edges: []mesh.Edge{{A: 10, B: 11}, {A: 11, B: 12}, {A: 11, B: 10}},
	}
	doc, err := export.Build(src, nil)
	require.NoError(t, err)
	require.Equal(t, 2, doc.Summary.Edges)
	require.Equal(t, 1, doc.Summary.Duplicates, "the reversed 11-10 edge overwrites 10-11")
	require.InDelta(t, 3.0, doc.Graph[1][0].Weight, 1e-12)
	require.InDelta(t, 5.0, doc.Graph[2][1].Weight, 1e-12)
}

func TestNonContiguousIndices(t *testing.T) {
	m := triangle(t)
	require.NoError(t, m.RemoveVertex(m.Vertices()[0].ID))

	_, err := export.Build(m, nil)
	require.ErrorIs(t, err, export.ErrNonContiguousIndices)

	m.IndexUpdate()
	doc, err := export.Build(m, nil)
	require.NoError(t, err)
	require.Len(t, doc.Verts, 2)

	dup := snapshot{verts: []mesh.Vertex{{ID: 1, Index: 0}, {ID: 2, Index: 0}}}
	_, err = export.Build(dup, nil)
	require.ErrorIs(t, err, export.ErrNonContiguousIndices)
}

func TestUnknownEndpoint(t *testing.T) {
	src := snapshot{
		verts: []mesh.Vertex{{ID: 1, Index: 0}},
		edges: []mesh.Edge{{A: 1, B: 2}},
	}
	_, err := export.Build(src, nil)
	require.ErrorIs(t, err, export.ErrUnknownEndpoint)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.json")

	doc, err := export.Build(triangle(t), nil)
	require.NoError(t, err)
	require.NoError(t, export.WriteFile(path, doc))

	back, err := export.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, doc.Verts, back.Verts)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left")
}

func TestFailedWriteLeavesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	bad := &export.Document{
		Verts: []export.VertexRecord{{Coords: [3]float64{math.NaN(), 0, 0}}},
		Graph: export.Adjacency{0: {}},
	}
	require.Error(t, export.WriteFile(path, bad))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "previous", string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	good, err := export.Build(triangle(t), nil)
	require.NoError(t, err)
	require.Error(t, export.WriteFile(filepath.Join(dir, "missing", "out.json"), good))
}

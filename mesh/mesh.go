// SPDX-License-Identifier: MIT

package mesh

import "fmt"

// Mesh is an editable polygon mesh. It is not safe for concurrent use; the
// session serializes access to it.
type Mesh struct {
	// Name identifies the mesh, e.g. to the label store.
	Name string

	verts   []*Vertex // storage order == index order after IndexUpdate
	byID    map[uint64]*Vertex
	edges   []Edge
	edgeSet map[[2]uint64]struct{}
	faces   [][]uint64
	nextID  uint64
	dirty   bool
}

// New returns an empty mesh.
func New(name string) *Mesh {
	return &Mesh{
		Name:    name,
		byID:    make(map[uint64]*Vertex),
		edgeSet: make(map[[2]uint64]struct{}),
	}
}

// AddVertex appends a vertex at co and returns its stable ID.
// The new vertex receives the next free index.
func (m *Mesh) AddVertex(co Vec3) uint64 {
	id := m.nextID
	m.nextID++
	v := &Vertex{ID: id, Index: len(m.verts), Co: co}
	m.verts = append(m.verts, v)
	m.byID[id] = v

	return id
}

// AddEdge links a and b. Adding an existing edge (in either orientation) is a no-op.
func (m *Mesh) AddEdge(a, b uint64) error {
	if _, ok := m.byID[a]; !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, a)
	}
	if _, ok := m.byID[b]; !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, b)
	}
	if a == b {
		return ErrDegenerateEdge
	}
	e := Edge{A: a, B: b}
	if _, ok := m.edgeSet[e.Key()]; ok {
		return nil
	}
	m.edgeSet[e.Key()] = struct{}{}
	m.edges = append(m.edges, e)

	return nil
}

// AddFace adds a polygon over ids (in winding order) together with its
// boundary edges.
func (m *Mesh) AddFace(ids ...uint64) error {
	if len(ids) < 3 {
		return ErrFaceTooSmall
	}
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := m.byID[id]; !ok {
			return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
		}
		if _, dup := seen[id]; dup {
			return ErrDegenerateEdge
		}
		seen[id] = struct{}{}
	}
	for i := range ids {
		if err := m.AddEdge(ids[i], ids[(i+1)%len(ids)]); err != nil {
			return err
		}
	}
	m.faces = append(m.faces, append([]uint64(nil), ids...))

	return nil
}

// RemoveVertex deletes the vertex, its incident edges and every face using it.
// Remaining vertices keep their old Index until IndexUpdate is called.
func (m *Mesh) RemoveVertex(id uint64) error {
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	delete(m.byID, id)
	for i, v := range m.verts {
		if v.ID == id {
			m.verts = append(m.verts[:i], m.verts[i+1:]...)
			break
		}
	}

	kept := m.edges[:0]
	for _, e := range m.edges {
		if e.A == id || e.B == id {
			delete(m.edgeSet, e.Key())
			continue
		}
		kept = append(kept, e)
	}
	m.edges = kept

	faces := m.faces[:0]
	for _, f := range m.faces {
		if !containsID(f, id) {
			faces = append(faces, f)
		}
	}
	m.faces = faces
	m.dirty = true

	return nil
}

// IndexUpdate renumbers vertex indices densely in storage order.
func (m *Mesh) IndexUpdate() {
	for i, v := range m.verts {
		v.Index = i
	}
	m.dirty = false
}

// IndicesDirty reports whether vertices were removed since the last IndexUpdate.
func (m *Mesh) IndicesDirty() bool { return m.dirty }

// Vertices returns a copy of all vertices in storage order.
func (m *Mesh) Vertices() []Vertex {
	out := make([]Vertex, len(m.verts))
	for i, v := range m.verts {
		out[i] = *v
	}

	return out
}

// Vertex returns a copy of the vertex with the given ID.
func (m *Mesh) Vertex(id uint64) (Vertex, bool) {
	v, ok := m.byID[id]
	if !ok {
		return Vertex{}, false
	}

	return *v, true
}

// Edges returns a copy of all edges in insertion order.
func (m *Mesh) Edges() []Edge {
	return append([]Edge(nil), m.edges...)
}

// Faces returns a copy of all faces.
func (m *Mesh) Faces() [][]uint64 {
	out := make([][]uint64, len(m.faces))
	for i, f := range m.faces {
		out[i] = append([]uint64(nil), f...)
	}

	return out
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.verts) }

// EdgeCount returns the number of unique edges.
func (m *Mesh) EdgeCount() int { return len(m.edges) }

// SetCo moves a vertex.
func (m *Mesh) SetCo(id uint64, co Vec3) error {
	v, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	v.Co = co

	return nil
}

// Select marks the given vertex IDs as selected.
func (m *Mesh) Select(ids ...uint64) error {
	for _, id := range ids {
		v, ok := m.byID[id]
		if !ok {
			return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
		}
		v.Selected = true
	}

	return nil
}

// SelectIndices marks the vertices holding the given Vertex.Index values as
// selected. While indices are stale (see IndicesDirty) an index may be
// missing or shared; a shared index selects every vertex holding it.
func (m *Mesh) SelectIndices(indices ...int) error {
	byIndex := make(map[int][]*Vertex, len(m.verts))
	for _, v := range m.verts {
		byIndex[v.Index] = append(byIndex[v.Index], v)
	}
	for _, idx := range indices {
		if _, ok := byIndex[idx]; !ok {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
		}
	}
	for _, idx := range indices {
		for _, v := range byIndex[idx] {
			v.Selected = true
		}
	}

	return nil
}

// SetSelected sets the selection flag of one vertex.
func (m *Mesh) SetSelected(id uint64, selected bool) error {
	v, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	v.Selected = selected

	return nil
}

// SelectAll selects every vertex.
func (m *Mesh) SelectAll() {
	for _, v := range m.verts {
		v.Selected = true
	}
}

// DeselectAll clears the selection.
func (m *Mesh) DeselectAll() {
	for _, v := range m.verts {
		v.Selected = false
	}
}

// Selected returns copies of the selected vertices in storage order.
func (m *Mesh) Selected() []Vertex {
	var out []Vertex
	for _, v := range m.verts {
		if v.Selected {
			out = append(out, *v)
		}
	}

	return out
}

func containsID(ids []uint64, id uint64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

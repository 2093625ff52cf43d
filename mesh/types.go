// SPDX-License-Identifier: MIT

// Package mesh models the editable polygon mesh that labels are attached to
// and that the exporter reads: vertices with a stable identity and a dense
// session index, undirected edges, faces and a selection flag.
//
// Identity vs. index:
//
//   - Vertex.ID never changes and is never reused inside one Mesh. Labels are
//     keyed by it so they survive topology edits.
//   - Vertex.Index is the zero-based position used by exports. Removing a
//     vertex leaves a gap until IndexUpdate renumbers the remaining vertices,
//     exactly like a host editor whose index table has gone stale.
//
// Errors:
//
//	ErrVertexNotFound  - a vertex ID does not belong to the mesh.
//	ErrDegenerateEdge  - an edge or face repeats the same vertex.
//	ErrFaceTooSmall    - a face has fewer than three vertices.
//	ErrIndexOutOfRange - no vertex holds a selection index.
//	ErrMalformedOBJ    - an OBJ statement could not be parsed.
package mesh

import (
	"errors"
	"math"
)

// Sentinel errors for mesh operations.
var (
	// ErrVertexNotFound indicates a vertex ID that does not belong to the mesh.
	ErrVertexNotFound = errors.New("mesh: vertex not found")

	// ErrDegenerateEdge indicates an edge whose endpoints are the same vertex.
	ErrDegenerateEdge = errors.New("mesh: degenerate edge")

	// ErrFaceTooSmall indicates a face with fewer than three corners.
	ErrFaceTooSmall = errors.New("mesh: face needs at least three vertices")

	// ErrIndexOutOfRange indicates a vertex index no vertex currently holds.
	ErrIndexOutOfRange = errors.New("mesh: vertex index out of range")

	// ErrMalformedOBJ indicates an OBJ statement that could not be parsed.
	ErrMalformedOBJ = errors.New("mesh: malformed OBJ")
)

// Vec3 is a point or direction in object space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a*s.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Len returns the Euclidean length of a.
func (a Vec3) Len() float64 { return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z) }

// Array returns the coordinates as an (x, y, z) triple.
func (a Vec3) Array() [3]float64 { return [3]float64{a.X, a.Y, a.Z} }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec3) float64 { return a.Sub(b).Len() }

// Vertex is a single mesh vertex.
type Vertex struct {
	// ID is the stable identity of the vertex inside its mesh.
	ID uint64
	// Index is the session index; dense and zero-based after IndexUpdate.
	Index int
	// Co is the object-space coordinate.
	Co Vec3
	// Selected reports whether the vertex is part of the edit selection.
	Selected bool
}

// Edge is an unordered pair of vertex IDs.
type Edge struct {
	A, B uint64
}

// Key returns the normalized (min, max) form used for de-duplication.
func (e Edge) Key() [2]uint64 {
	if e.A > e.B {
		return [2]uint64{e.B, e.A}
	}
	return [2]uint64{e.A, e.B}
}

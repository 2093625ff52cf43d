// SPDX-License-Identifier: MIT

package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadOBJ parses a Wavefront OBJ stream into a Mesh.
//
// Supported statements:
//
//	o <name>          first object name becomes Mesh.Name
//	v x y z [w]       vertex position, finite (w ignored)
//	f a b c ...       polygon; corners may be "v", "v/vt", "v//vn" or "v/vt/vn"
//	l a b ...         polyline; consecutive pairs become loose edges
//
// Indices are 1-based; negative indices are relative to the vertices read so
// far. Every other statement (vt, vn, g, s, usemtl, mtllib, comments) is
// ignored. Vertex IDs and indices follow the order of the v statements.
func ReadOBJ(r io.Reader, name string) (*Mesh, error) {
	m := New(name)
	named := false
	// ids[i] is the mesh ID of the i-th v statement.
	var ids []uint64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		ident, args := fields[0], fields[1:]

		switch ident {
		case "o":
			if !named && len(args) > 0 {
				m.Name = strings.Join(args, " ")
				named = true
			}
		case "v":
			if len(args) < 3 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrMalformedOBJ, lineNo)
			}
			var co [3]float64
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(args[i], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNo, err)
				}
				if math.IsNaN(f) || math.IsInf(f, 0) {
					return nil, fmt.Errorf("%w: line %d: non-finite coordinate %q", ErrMalformedOBJ, lineNo, args[i])
				}
				co[i] = f
			}
			ids = append(ids, m.AddVertex(Vec3{co[0], co[1], co[2]}))
		case "f", "l":
			corners := make([]uint64, 0, len(args))
			for _, a := range args {
				id, err := resolveOBJIndex(a, ids)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNo, err)
				}
				corners = append(corners, id)
			}
			if ident == "f" {
				if err := m.AddFace(corners...); err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNo, err)
				}
				continue
			}
			if len(corners) < 2 {
				return nil, fmt.Errorf("%w: line %d: line needs two vertices", ErrMalformedOBJ, lineNo)
			}
			for i := 0; i+1 < len(corners); i++ {
				if err := m.AddEdge(corners[i], corners[i+1]); err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNo, err)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	return m, nil
}

// LoadOBJ reads the OBJ file at path. Without an "o" statement the mesh is
// named after the file (base name without extension).
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	m, err := ReadOBJ(f, strings.TrimSuffix(base, filepath.Ext(base)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// WriteOBJ writes m as OBJ: one "o", the vertices in storage order, the
// faces, and every edge not covered by a face as an "l" statement.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "o %s\n", m.Name)

	pos := make(map[uint64]int, len(m.verts))
	for i, v := range m.verts {
		pos[v.ID] = i + 1
		fmt.Fprintf(bw, "v %s %s %s\n",
			strconv.FormatFloat(v.Co.X, 'g', -1, 64),
			strconv.FormatFloat(v.Co.Y, 'g', -1, 64),
			strconv.FormatFloat(v.Co.Z, 'g', -1, 64))
	}

	covered := make(map[[2]uint64]struct{})
	for _, f := range m.faces {
		bw.WriteString("f")
		for i, id := range f {
			fmt.Fprintf(bw, " %d", pos[id])
			covered[Edge{A: id, B: f[(i+1)%len(f)]}.Key()] = struct{}{}
		}
		bw.WriteString("\n")
	}
	for _, e := range m.edges {
		if _, ok := covered[e.Key()]; ok {
			continue
		}
		fmt.Fprintf(bw, "l %d %d\n", pos[e.A], pos[e.B])
	}

	return bw.Flush()
}

// resolveOBJIndex maps one face/line corner token to a mesh vertex ID.
func resolveOBJIndex(token string, ids []uint64) (uint64, error) {
	head := token
	if i := strings.IndexByte(token, '/'); i >= 0 {
		head = token[:i]
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", token)
	}
	switch {
	case n > 0 && n <= len(ids):
		return ids[n-1], nil
	case n < 0 && -n <= len(ids):
		return ids[len(ids)+n], nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d vertices)", n, len(ids))
	}
}

// SPDX-License-Identifier: MIT

package mesh

// MatchByPosition pairs the vertices of from with the vertices of to that sit
// at exactly the same coordinate. The result maps a vertex ID of from to a
// vertex ID of to. A coordinate shared by several vertices in either mesh is
// ambiguous and left out.
//
// Complexity: O(V_from + V_to).
func MatchByPosition(from, to *Mesh) map[uint64]uint64 {
	target := uniquePositions(to)
	source := uniquePositions(from)

	out := make(map[uint64]uint64, len(source))
	for co, id := range source {
		if nid, ok := target[co]; ok {
			out[id] = nid
		}
	}

	return out
}

// uniquePositions maps every coordinate held by exactly one vertex to its ID.
func uniquePositions(m *Mesh) map[Vec3]uint64 {
	seen := make(map[Vec3]uint64, len(m.verts))
	shared := make(map[Vec3]struct{})
	for _, v := range m.verts {
		if _, dup := seen[v.Co]; dup {
			shared[v.Co] = struct{}{}
			continue
		}
		seen[v.Co] = v.ID
	}
	for co := range shared {
		delete(seen, co)
	}

	return seen
}

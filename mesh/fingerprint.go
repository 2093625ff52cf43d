// SPDX-License-Identifier: MIT

package mesh

import (
	"encoding/binary"
	"encoding/hex"
	"sort"

	"lukechampine.com/blake3"
)

// Fingerprint returns a hex BLAKE3 digest of the mesh topology: vertex IDs in
// storage order followed by the sorted, normalized edge list. Coordinates,
// selection and the name are not part of it, so moving vertices keeps the
// fingerprint while adding, removing or reconnecting them changes it.
func Fingerprint(m *Mesh) string {
	h := blake3.New(32, nil)
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(len(m.verts)))
	h.Write(buf[:])
	for _, v := range m.verts {
		binary.LittleEndian.PutUint64(buf[:], v.ID)
		h.Write(buf[:])
	}

	keys := make([][2]uint64, 0, len(m.edges))
	for _, e := range m.edges {
		keys = append(keys, e.Key())
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	binary.LittleEndian.PutUint64(buf[:], uint64(len(keys)))
	h.Write(buf[:])
	for _, k := range keys {
		binary.LittleEndian.PutUint64(buf[:], k[0])
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], k[1])
		h.Write(buf[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// SPDX-License-Identifier: MIT

// Package labels holds the per-vertex "place" attribute layer and the stores
// that persist it between sessions.
//
// A Layer is keyed by the stable vertex ID (mesh.Vertex.ID), never by the
// session index, so labels survive index renumbering. A missing layer is a
// distinct state from an empty one: operations that need a layer fail with
// ErrMissingLayer until one has been created.
package labels

import (
	"errors"
	"sort"
)

// Sentinel errors for label layers and stores.
var (
	// ErrMissingLayer indicates that the mesh has no label layer yet.
	ErrMissingLayer = errors.New("labels: layer does not exist")

	// ErrStoreClosed indicates use of a store after Close.
	ErrStoreClosed = errors.New("labels: store closed")
)

// Layer maps vertex IDs to place labels. Unset vertices read as "".
// A Layer is not safe for concurrent use; the session serializes access.
type Layer struct {
	places map[uint64]string
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{places: make(map[uint64]string)}
}

// Get returns the label of id, or "" if none was set.
// A nil Layer reads as empty.
func (l *Layer) Get(id uint64) string {
	if l == nil {
		return ""
	}
	return l.places[id]
}

// Set assigns label to id. The empty string is a valid label.
func (l *Layer) Set(id uint64, label string) {
	l.places[id] = label
}

// Delete forgets the label of id.
func (l *Layer) Delete(id uint64) {
	delete(l.places, id)
}

// Len returns the number of vertices with an explicit label.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.places)
}

// IDs returns the labelled vertex IDs in ascending order.
func (l *Layer) IDs() []uint64 {
	if l == nil {
		return nil
	}
	ids := make([]uint64, 0, len(l.places))
	for id := range l.places {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Remap returns a copy of l re-keyed through move. Labels whose ID move
// rejects are left out and counted in dropped.
func (l *Layer) Remap(move func(id uint64) (uint64, bool)) (next *Layer, dropped int) {
	next = NewLayer()
	for _, id := range l.IDs() {
		nid, ok := move(id)
		if !ok {
			dropped++
			continue
		}
		next.places[nid] = l.places[id]
	}

	return next, dropped
}

// Clone returns an independent copy of l.
func (l *Layer) Clone() *Layer {
	c := NewLayer()
	if l == nil {
		return c
	}
	for id, p := range l.places {
		c.places[id] = p
	}

	return c
}

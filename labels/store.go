// SPDX-License-Identifier: MIT

package labels

import "sync"

// Store persists label layers by mesh name together with the topology
// fingerprint the labels were written against.
type Store interface {
	// HasLayer reports whether a layer exists for mesh.
	HasLayer(mesh string) (bool, error)
	// CreateLayer creates an empty layer for mesh. An existing layer is left
	// untouched (labels are never cleared) and no error is returned.
	CreateLayer(mesh, fingerprint string) error
	// LoadLayer returns the stored layer and its fingerprint, or
	// ErrMissingLayer.
	LoadLayer(mesh string) (*Layer, string, error)
	// SaveLayer replaces the stored labels of mesh with layer, creating the
	// layer if needed.
	SaveLayer(mesh string, layer *Layer, fingerprint string) error
	// Close releases the store. Further calls return ErrStoreClosed.
	Close() error
}

type memEntry struct {
	layer       *Layer
	fingerprint string
}

// MemoryStore is a process-local Store. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	layers map[string]memEntry
	closed bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layers: make(map[string]memEntry)}
}

// HasLayer implements Store.
func (s *MemoryStore) HasLayer(mesh string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, ErrStoreClosed
	}
	_, ok := s.layers[mesh]

	return ok, nil
}

// CreateLayer implements Store.
func (s *MemoryStore) CreateLayer(mesh, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if _, ok := s.layers[mesh]; ok {
		return nil
	}
	s.layers[mesh] = memEntry{layer: NewLayer(), fingerprint: fingerprint}

	return nil
}

// LoadLayer implements Store. The returned layer is a copy.
func (s *MemoryStore) LoadLayer(mesh string) (*Layer, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, "", ErrStoreClosed
	}
	e, ok := s.layers[mesh]
	if !ok {
		return nil, "", ErrMissingLayer
	}

	return e.layer.Clone(), e.fingerprint, nil
}

// SaveLayer implements Store.
func (s *MemoryStore) SaveLayer(mesh string, layer *Layer, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.layers[mesh] = memEntry{layer: layer.Clone(), fingerprint: fingerprint}

	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	return nil
}

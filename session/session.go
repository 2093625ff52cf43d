// SPDX-License-Identifier: MIT

// Package session models the editing context that operators run in: a set of
// named objects, the active object, the interaction mode, scoped exclusive
// access to the active mesh and a redraw hub that overlays subscribe to.
//
// Access pattern:
//
//	err := sess.Do(func(v *session.View) error {
//	    obj, err := v.ActiveMesh()
//	    if err != nil {
//	        return err
//	    }
//	    ...
//	    v.Touch() // request a redraw once the view is released
//	    return nil
//	})
//
// A View holds the session lock until Release; Release is idempotent and the
// redraw requested by Touch fires after the lock is dropped, so subscribers
// may open views of their own.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/pathgraph/labels"
	"github.com/katalvlaran/pathgraph/mesh"
)

// Sentinel errors for session operations.
var (
	// ErrInvalidSelection indicates no active object or an active object
	// that is not a mesh.
	ErrInvalidSelection = errors.New("session: active object is not a mesh")

	// ErrNotEditMode indicates an operation that requires edit mode.
	ErrNotEditMode = errors.New("session: not in edit mode")

	// ErrObjectNotFound indicates an unknown object name.
	ErrObjectNotFound = errors.New("session: object not found")

	// ErrDuplicateObject indicates an object name that is already taken.
	ErrDuplicateObject = errors.New("session: duplicate object name")
)

// Unavailable reports whether err only means there is nothing to show: no
// active mesh object, or the session is not in edit mode.
func Unavailable(err error) bool {
	return errors.Is(err, ErrInvalidSelection) || errors.Is(err, ErrNotEditMode)
}

// ObjectType classifies scene objects. Only TypeMesh carries a mesh.
type ObjectType int

const (
	TypeEmpty ObjectType = iota
	TypeMesh
	TypeCamera
	TypeLight
)

// String returns the lower-case type name.
func (t ObjectType) String() string {
	switch t {
	case TypeMesh:
		return "mesh"
	case TypeCamera:
		return "camera"
	case TypeLight:
		return "light"
	default:
		return "empty"
	}
}

// Mode is the interaction mode of the session.
type Mode int

const (
	ModeObject Mode = iota
	ModeEdit
)

// String returns "object" or "edit".
func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "object"
}

// Object is a named scene object.
type Object struct {
	Name string
	Type ObjectType
	// Mesh is non-nil for TypeMesh objects.
	Mesh *mesh.Mesh
	// Labels is the place layer; nil until created.
	Labels *labels.Layer
	// Location and Scale place the object in world space.
	Location mesh.Vec3
	Scale    float64
}

// NewMeshObject wraps m in a mesh object named after it, at the origin with
// unit scale.
func NewMeshObject(m *mesh.Mesh) *Object {
	return &Object{Name: m.Name, Type: TypeMesh, Mesh: m, Scale: 1}
}

// World maps an object-space coordinate to world space.
func (o *Object) World(co mesh.Vec3) mesh.Vec3 {
	s := o.Scale
	if s == 0 {
		s = 1
	}
	return co.Scale(s).Add(o.Location)
}

// Session is the editing context. The zero value is not usable; call New.
type Session struct {
	mu      sync.Mutex
	objects map[string]*Object
	active  string
	mode    Mode
	hub     *Hub
}

// New returns an empty session in object mode.
func New() *Session {
	return &Session{
		objects: make(map[string]*Object),
		hub:     NewHub(),
	}
}

// Add registers obj. The first object added becomes active.
func (s *Session) Add(obj *Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[obj.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateObject, obj.Name)
	}
	s.objects[obj.Name] = obj
	if s.active == "" {
		s.active = obj.Name
	}

	return nil
}

// SetActive makes the named object active. An empty name clears the
// active object.
func (s *Session) SetActive(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		if _, ok := s.objects[name]; !ok {
			return fmt.Errorf("%w: %q", ErrObjectNotFound, name)
		}
	}
	s.active = name

	return nil
}

// Active returns the active object, or nil.
func (s *Session) Active() *Object {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.objects[s.active]
}

// Object returns the named object.
func (s *Session) Object(name string) (*Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[name]

	return o, ok
}

// Names returns all object names in ascending order.
func (s *Session) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.objects))
	for n := range s.objects {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// SetMode switches the interaction mode and requests a redraw.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	changed := s.mode != m
	s.mode = m
	s.mu.Unlock()
	if changed {
		s.hub.Redraw()
	}
}

// Mode returns the interaction mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode
}

// Hub returns the redraw hub.
func (s *Session) Hub() *Hub { return s.hub }

// Redraw notifies every redraw subscriber.
func (s *Session) Redraw() { s.hub.Redraw() }

// Acquire locks the session and returns a view on it. The caller must call
// Release; prefer Do.
func (s *Session) Acquire() *View {
	s.mu.Lock()
	return &View{s: s}
}

// Do acquires a view, runs fn and always releases the view, also when fn
// panics.
func (s *Session) Do(fn func(v *View) error) error {
	v := s.Acquire()
	defer v.Release()

	return fn(v)
}

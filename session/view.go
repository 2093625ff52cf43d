// SPDX-License-Identifier: MIT

package session

import "sync"

// View is exclusive, scoped access to the session. It is valid until Release.
type View struct {
	s       *Session
	once    sync.Once
	touched bool
}

// Mode returns the interaction mode.
func (v *View) Mode() Mode { return v.s.mode }

// Active returns the active object, or nil.
func (v *View) Active() *Object { return v.s.objects[v.s.active] }

// Object returns the named object.
func (v *View) Object(name string) (*Object, bool) {
	o, ok := v.s.objects[name]
	return o, ok
}

// ActiveMesh returns the active object if it is a mesh object, otherwise
// ErrInvalidSelection.
func (v *View) ActiveMesh() (*Object, error) {
	o := v.Active()
	if o == nil || o.Type != TypeMesh || o.Mesh == nil {
		return nil, ErrInvalidSelection
	}

	return o, nil
}

// EditMesh is ActiveMesh that additionally requires edit mode.
func (v *View) EditMesh() (*Object, error) {
	o, err := v.ActiveMesh()
	if err != nil {
		return nil, err
	}
	if v.s.mode != ModeEdit {
		return nil, ErrNotEditMode
	}

	return o, nil
}

// Touch records that the view changed visible state; a redraw fires on
// Release.
func (v *View) Touch() { v.touched = true }

// Release unlocks the session. Only the first call has an effect.
func (v *View) Release() {
	v.once.Do(func() {
		touched := v.touched
		v.s.mu.Unlock()
		if touched {
			v.s.hub.Redraw()
		}
	})
}

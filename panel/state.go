// SPDX-License-Identifier: MIT

// Package panel is the interactive side panel for labelling vertices: it
// shows whether the label layer exists, the overlay toggles and the place of
// the current selection, and drives the create/save/export actions.
//
// Inspect holds the panel logic and is independent of the terminal UI; Model
// wraps it in a bubbletea program.
package panel

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/pathgraph/overlay"
	"github.com/katalvlaran/pathgraph/session"
)

// Panel texts.
const (
	TextMissingLayer = "Layers doesnt exist"
	TextCreateLayer  = "Create data layer"
	TextNothing      = "Nothing selected"
	TextMixed        = "Mixed"
)

// State is what the panel shows for one session snapshot.
type State struct {
	Object   string
	HasLayer bool
	Settings overlay.Settings
	// Selected is the number of selected vertices.
	Selected int
	// Place is the shared label of the selection; meaningless when Mixed.
	Place string
	Mixed bool
}

// Inspect reads the panel state of the active mesh. The panel belongs to
// mesh edit mode, so it fails with session.ErrInvalidSelection or
// session.ErrNotEditMode outside of it.
func Inspect(v *session.View, settings overlay.Settings) (State, error) {
	obj, err := v.EditMesh()
	if err != nil {
		return State{}, err
	}

	st := State{Object: obj.Name, HasLayer: obj.Labels != nil, Settings: settings}
	if !st.HasLayer {
		return st, nil
	}

	sel := obj.Mesh.Selected()
	st.Selected = len(sel)
	if len(sel) == 0 {
		return st, nil
	}
	st.Place = obj.Labels.Get(sel[0].ID)
	for _, vert := range sel[1:] {
		if obj.Labels.Get(vert.ID) != st.Place {
			st.Mixed = true
			break
		}
	}

	return st, nil
}

// PlaceText returns the selection line, e.g. "Place: Kitchen".
func (s State) PlaceText() string {
	if s.Selected == 0 {
		return TextNothing
	}
	if s.Mixed {
		return "Place: " + TextMixed
	}
	return "Place: " + s.Place
}

// Lines renders the state as plain panel rows.
func (s State) Lines() []string {
	if !s.HasLayer {
		return []string{TextMissingLayer, "[c] " + TextCreateLayer}
	}
	lines := []string{
		fmt.Sprintf("[l] Show Labels: %s", onOff(s.Settings.ShowLabels)),
		fmt.Sprintf("[i] Show Indexes: %s", onOff(s.Settings.ShowIndexes)),
		"[+/-] Labels Size: " + strconv.Itoa(s.Settings.LabelsSize),
		"",
		s.PlaceText(),
	}

	return lines
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

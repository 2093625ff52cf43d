// SPDX-License-Identifier: MIT

// Package overlay draws per-vertex text (place labels or indices) over the
// viewport of the active mesh. Drawing is driven by session redraw events,
// not by a clock: the Renderer subscribes to the session hub on Open and
// unsubscribes on Close.
package overlay

import (
	"errors"
	"fmt"
)

// Label size bounds in pixels.
const (
	MinLabelsSize     = 10
	MaxLabelsSize     = 50
	DefaultLabelsSize = 20
)

// Sentinel errors for the overlay.
var (
	// ErrLabelsSize indicates a label size outside [MinLabelsSize, MaxLabelsSize].
	ErrLabelsSize = errors.New("overlay: labels size out of range")

	// ErrAlreadyOpen indicates Open on a renderer that is already subscribed.
	ErrAlreadyOpen = errors.New("overlay: renderer already open")
)

// Settings are the user toggles of the overlay.
type Settings struct {
	// ShowLabels enables drawing at all.
	ShowLabels bool `yaml:"show_labels"`
	// ShowIndexes draws vertex indices instead of place labels.
	ShowIndexes bool `yaml:"show_indexes"`
	// LabelsSize is the text size in pixels.
	LabelsSize int `yaml:"labels_size"`
}

// DefaultSettings returns labels hidden, places rather than indices and the
// default size.
func DefaultSettings() Settings {
	return Settings{LabelsSize: DefaultLabelsSize}
}

// Validate checks the size bounds.
func (s Settings) Validate() error {
	if s.LabelsSize < MinLabelsSize || s.LabelsSize > MaxLabelsSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrLabelsSize, s.LabelsSize, MinLabelsSize, MaxLabelsSize)
	}
	return nil
}

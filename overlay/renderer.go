// SPDX-License-Identifier: MIT

package overlay

import (
	"io"
	"log"
	"strconv"
	"sync"

	"github.com/katalvlaran/pathgraph/metrics"
	"github.com/katalvlaran/pathgraph/session"
)

// TextItem is one piece of screen-space text.
type TextItem struct {
	X, Y float64
	Text string
	Size int
}

// Sink receives the items of one redraw. An empty frame clears the overlay.
type Sink func(items []TextItem)

// Option customizes a Renderer.
type Option func(r *Renderer)

// WithLogger sets the logger that receives draw failures; nil keeps the
// default, which discards them.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer draws the overlay for the active object of a session.
type Renderer struct {
	sess   *session.Session
	sink   Sink
	logger *log.Logger

	mu       sync.Mutex
	settings Settings
	viewport Viewport
	sub      *session.Subscription
}

// NewRenderer returns a closed renderer with DefaultSettings.
func NewRenderer(sess *session.Session, vp Viewport, sink Sink, opts ...Option) *Renderer {
	r := &Renderer{
		sess:     sess,
		sink:     sink,
		logger:   log.New(io.Discard, "", 0),
		settings: DefaultSettings(),
		viewport: vp,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SetSettings validates and applies s, then requests a redraw.
func (r *Renderer) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.settings = s
	r.mu.Unlock()
	r.sess.Redraw()

	return nil
}

// Settings returns the current settings.
func (r *Renderer) Settings() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.settings
}

// SetViewport replaces the projection used by subsequent draws.
func (r *Renderer) SetViewport(vp Viewport) {
	r.mu.Lock()
	r.viewport = vp
	r.mu.Unlock()
}

// Open subscribes the renderer to session redraws.
func (r *Renderer) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sub != nil {
		return ErrAlreadyOpen
	}
	r.sub = r.sess.Hub().Subscribe(r.redraw)

	return nil
}

// Close unsubscribes the renderer. Closing a closed renderer is a no-op;
// it may be opened again afterwards.
func (r *Renderer) Close() {
	r.mu.Lock()
	sub := r.sub
	r.sub = nil
	r.mu.Unlock()
	if sub != nil {
		sub.Close()
	}
}

// IsOpen reports whether the renderer is subscribed.
func (r *Renderer) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sub != nil
}

func (r *Renderer) redraw() {
	items := r.Draw()
	if len(items) > 0 {
		metrics.OverlayDrawsTotal.Inc()
	}
	if r.sink != nil {
		r.sink(items)
	}
}

// Draw computes the text items for the current session state.
//
// Nothing is drawn unless ShowLabels is on, the session is in edit mode and
// a mesh object is active. Each vertex contributes its index when
// ShowIndexes is on, otherwise its place label (nothing without a layer).
// Vertices projecting outside the viewport are skipped.
func (r *Renderer) Draw() []TextItem {
	r.mu.Lock()
	settings, vp := r.settings, r.viewport
	r.mu.Unlock()

	if !settings.ShowLabels {
		return nil
	}

	var items []TextItem
	err := r.sess.Do(func(v *session.View) error {
		obj, err := v.EditMesh()
		if err != nil {
			return err
		}
		if !settings.ShowIndexes && obj.Labels == nil {
			return nil
		}
		for _, vert := range obj.Mesh.Vertices() {
			x, y, ok := vp.Project(obj.World(vert.Co))
			if !ok {
				continue
			}
			text := strconv.Itoa(vert.Index)
			if !settings.ShowIndexes {
				text = obj.Labels.Get(vert.ID)
			}
			items = append(items, TextItem{X: x, Y: y, Text: text, Size: settings.LabelsSize})
		}
		return nil
	})
	if err != nil && !session.Unavailable(err) {
		r.logger.Printf("overlay: %v", err)
		return nil
	}

	return items
}

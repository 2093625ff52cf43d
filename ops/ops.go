// SPDX-License-Identifier: MIT

// Package ops implements the user-facing actions on a session: loading a
// mesh with its persisted labels, creating the label layer, saving a place
// label on the selection and exporting the graph document.
//
// Every action runs inside one session view, so it either completes or
// leaves the session unchanged, and reports failures as errors:
//
//	session.ErrInvalidSelection - no active mesh object.
//	session.ErrNotEditMode      - label editing outside edit mode.
//	labels.ErrMissingLayer      - the label layer has not been created.
package ops

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/katalvlaran/pathgraph/export"
	"github.com/katalvlaran/pathgraph/labels"
	"github.com/katalvlaran/pathgraph/mesh"
	"github.com/katalvlaran/pathgraph/metrics"
	"github.com/katalvlaran/pathgraph/session"
)

// Operator runs actions against one session and label store.
type Operator struct {
	Session *session.Session
	Store   labels.Store
	// Logger receives warnings and progress; nil discards them.
	Logger *log.Logger
	// Indent is the export indentation width; 0 means export.DefaultIndent.
	Indent int
}

// New returns an Operator over sess and store.
func New(sess *session.Session, store labels.Store, logger *log.Logger) *Operator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Operator{Session: sess, Store: store, Logger: logger}
}

func (o *Operator) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// LoadMesh reads the OBJ file at path, attaches its stored label layer (if
// any) and adds it to the session as the active object. A mesh with the same
// name is replaced in place, keeping its transform.
func (o *Operator) LoadMesh(path string) (*session.Object, error) {
	m, err := mesh.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	layer, err := o.restoreLayer(m)
	if err != nil {
		return nil, err
	}

	if existing, ok := o.Session.Object(m.Name); ok {
		err := o.Session.Do(func(v *session.View) error {
			existing.Type = session.TypeMesh
			existing.Mesh = m
			existing.Labels = layer
			v.Touch()
			return nil
		})
		if err != nil {
			return nil, err
		}
		return existing, o.Session.SetActive(m.Name)
	}

	obj := session.NewMeshObject(m)
	obj.Labels = layer
	if err := o.Session.Add(obj); err != nil {
		return nil, err
	}
	if err := o.Session.SetActive(obj.Name); err != nil {
		return nil, err
	}
	o.logf("loaded %s: %d vertices, %d edges", path, m.VertexCount(), m.EdgeCount())

	return obj, nil
}

// ReloadMesh re-reads path into the named object. Vertex IDs are assigned in
// file order, so they only carry labels over while the topology is unchanged.
// Otherwise labels are moved to the vertex at the same position in the new
// mesh and persisted; labels without such a vertex are dropped.
func (o *Operator) ReloadMesh(name, path string) (err error) {
	defer func() { metrics.ReloadsTotal.WithLabelValues(metrics.Result(err)).Inc() }()

	m, err := mesh.LoadOBJ(path)
	if err != nil {
		return err
	}

	return o.Session.Do(func(v *session.View) error {
		obj, ok := v.Object(name)
		if !ok {
			return fmt.Errorf("%w: %q", session.ErrObjectNotFound, name)
		}
		m.Name = obj.Name
		if obj.Labels != nil && obj.Mesh != nil {
			fp := mesh.Fingerprint(m)
			if fp != mesh.Fingerprint(obj.Mesh) {
				o.logf("warning: %s: topology changed; matching labels by vertex position", name)
				matched := mesh.MatchByPosition(obj.Mesh, m)
				next, dropped := obj.Labels.Remap(func(id uint64) (uint64, bool) {
					nid, ok := matched[id]
					return nid, ok
				})
				if dropped > 0 {
					o.logf("warning: %s: dropped %d labels of removed vertices", name, dropped)
				}
				if err := o.Store.SaveLayer(obj.Name, next, fp); err != nil {
					return fmt.Errorf("saving labels: %w", err)
				}
				obj.Labels = next
			}
		}
		obj.Mesh = m
		v.Touch()
		o.logf("reloaded %s from %s", name, path)
		return nil
	})
}

// restoreLayer loads the stored layer for m, or nil when none exists.
func (o *Operator) restoreLayer(m *mesh.Mesh) (*labels.Layer, error) {
	layer, fp, err := o.Store.LoadLayer(m.Name)
	if errors.Is(err, labels.ErrMissingLayer) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading labels of %s: %w", m.Name, err)
	}
	if cur := mesh.Fingerprint(m); fp != "" && fp != cur {
		o.logf("warning: %s: topology changed since labels were saved; vertex identities may differ", m.Name)
	}

	return layer, nil
}

// CreateLabelLayer attaches an empty label layer to the active mesh object.
// An existing layer, in the session or in the store, is kept as is.
func (o *Operator) CreateLabelLayer() error {
	return o.Session.Do(func(v *session.View) error {
		obj, err := v.ActiveMesh()
		if err != nil {
			return err
		}
		if obj.Labels != nil {
			return nil
		}
		if err := o.Store.CreateLayer(obj.Name, mesh.Fingerprint(obj.Mesh)); err != nil {
			return fmt.Errorf("creating label layer: %w", err)
		}
		layer, err := o.restoreLayer(obj.Mesh)
		if err != nil {
			return err
		}
		if layer == nil {
			layer = labels.NewLayer()
		}
		obj.Labels = layer
		v.Touch()
		o.logf("created label layer for %s", obj.Name)
		return nil
	})
}

// SaveLabel sets place on every selected vertex of the active mesh and
// persists the layer. It returns the number of vertices labelled; an empty
// selection is not an error. Requires edit mode and a label layer.
func (o *Operator) SaveLabel(place string) (int, error) {
	n := 0
	err := o.Session.Do(func(v *session.View) error {
		obj, err := v.EditMesh()
		if err != nil {
			return err
		}
		if obj.Labels == nil {
			return labels.ErrMissingLayer
		}

		next := obj.Labels.Clone()
		sel := obj.Mesh.Selected()
		for _, vert := range sel {
			next.Set(vert.ID, place)
		}
		if err := o.Store.SaveLayer(obj.Name, next, mesh.Fingerprint(obj.Mesh)); err != nil {
			return fmt.Errorf("saving labels: %w", err)
		}
		obj.Labels = next
		n = len(sel)
		v.Touch()
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.LabelsSavedTotal.Add(float64(n))

	return n, nil
}

// Snapshot builds the graph document of the active mesh.
func (o *Operator) Snapshot() (doc *export.Document, name string, err error) {
	err = o.Session.Do(func(v *session.View) error {
		obj, err := v.ActiveMesh()
		if err != nil {
			return err
		}
		if obj.Labels == nil {
			return labels.ErrMissingLayer
		}
		name = obj.Name
		doc, err = export.Build(obj.Mesh, obj.Labels)
		return err
	})

	return doc, name, err
}

// ExportGraph writes the graph document of the active mesh to path and
// returns the path written. An empty path means DefaultExportPath of the
// object name in the working directory.
func (o *Operator) ExportGraph(path string) (_ string, err error) {
	start := time.Now()
	defer func() {
		metrics.ExportsTotal.WithLabelValues(metrics.Result(err)).Inc()
		metrics.ExportDuration.Observe(time.Since(start).Seconds())
	}()

	doc, name, err := o.Snapshot()
	if err != nil {
		return "", err
	}
	if path == "" {
		path = DefaultExportPath(name)
	}

	var opts []export.Option
	if o.Indent != 0 {
		opts = append(opts, export.WithIndent(o.Indent))
	}
	if err := export.WriteFile(path, doc, opts...); err != nil {
		return "", err
	}

	sum := doc.Summary
	metrics.ExportedVertices.WithLabelValues(name).Set(float64(sum.Vertices))
	metrics.ExportedEdges.WithLabelValues(name).Set(float64(sum.Edges))
	if sum.Isolated > 0 {
		o.logf("warning: %s: %d isolated vertices", name, sum.Isolated)
	}
	o.logf("exported %s: %d vertices, %d edges -> %s", name, sum.Vertices, sum.Edges, path)

	return path, nil
}

// AutoExport re-exports the active mesh to path on every session redraw.
// Failures are logged. Close the returned subscription to stop.
func (o *Operator) AutoExport(path string) *session.Subscription {
	return o.Session.Hub().Subscribe(func() {
		if _, err := o.ExportGraph(path); err != nil {
			o.logf("auto-export: %v", err)
		}
	})
}

// DefaultExportPath returns "<object name>.json".
func DefaultExportPath(name string) string {
	return filepath.Clean(name + ".json")
}

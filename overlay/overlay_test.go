// SPDX-License-Identifier: MIT

package overlay_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathgraph/labels"
	"github.com/katalvlaran/pathgraph/mesh"
	"github.com/katalvlaran/pathgraph/overlay"
	"github.com/katalvlaran/pathgraph/session"
)

func setup(t *testing.T) (*session.Session, *session.Object) {
	t.Helper()
	m := mesh.New("Floor")
	a := m.AddVertex(mesh.Vec3{X: -1, Y: -1})
	b := m.AddVertex(mesh.Vec3{X: 1, Y: -1})
	c := m.AddVertex(mesh.Vec3{X: 0, Y: 1})
	require.NoError(t, m.AddFace(a, b, c))

	obj := session.NewMeshObject(m)
	obj.Labels = labels.NewLayer()
	obj.Labels.Set(b, "Kitchen")

	s := session.New()
	require.NoError(t, s.Add(obj))
	s.SetMode(session.ModeEdit)
	return s, obj
}

func TestSettingsValidate(t *testing.T) {
	d := overlay.DefaultSettings()
	require.NoError(t, d.Validate())
	require.False(t, d.ShowLabels)
	require.False(t, d.ShowIndexes)
	require.Equal(t, 20, d.LabelsSize)

	for _, size := range []int{9, 51, 0} {
		require.ErrorIs(t, overlay.Settings{LabelsSize: size}.Validate(), overlay.ErrLabelsSize)
	}
	for _, size := range []int{10, 50} {
		require.NoError(t, overlay.Settings{LabelsSize: size}.Validate())
	}
}

func TestProject(t *testing.T) {
	vp := overlay.Viewport{Width: 100, Height: 50, Zoom: 10}
	x, y, ok := vp.Project(mesh.Vec3{X: 1, Y: 1, Z: 7})
	require.True(t, ok)
	require.Equal(t, 60.0, x)
	require.Equal(t, 15.0, y, "screen y grows downwards")

	_, _, ok = vp.Project(mesh.Vec3{X: 6})
	require.False(t, ok)
}

func TestFitShowsEveryPoint(t *testing.T) {
	pts := []mesh.Vec3{{X: -3, Y: 2}, {X: 5, Y: -1}, {X: 0, Y: 0}}
	vp := overlay.Fit(pts, 40, 20, 1)
	for _, p := range pts {
		_, _, ok := vp.Project(p)
		require.True(t, ok, "%v visible", p)
	}
	single := overlay.Fit([]mesh.Vec3{{X: 4, Y: 4}}, 10, 10, 0)
	x, y, ok := single.Project(mesh.Vec3{X: 4, Y: 4})
	require.True(t, ok)
	require.Equal(t, 5.0, x)
	require.Equal(t, 5.0, y)
}

func TestDrawGating(t *testing.T) {
	s, obj := setup(t)
	vp := overlay.Viewport{Width: 100, Height: 100, Zoom: 10}
	r := overlay.NewRenderer(s, vp, nil)

	require.Empty(t, r.Draw(), "labels hidden by default")

	require.NoError(t, r.SetSettings(overlay.Settings{ShowLabels: true, LabelsSize: 12}))
	items := r.Draw()
	require.Len(t, items, 3)
	require.Equal(t, "", items[0].Text)
	require.Equal(t, "Kitchen", items[1].Text)
	require.Equal(t, 12, items[1].Size)
	require.Equal(t, 60.0, items[1].X)
	require.Equal(t, 60.0, items[1].Y)

	require.NoError(t, r.SetSettings(overlay.Settings{ShowLabels: true, ShowIndexes: true, LabelsSize: 20}))
	items = r.Draw()
	require.Equal(t, []string{"0", "1", "2"}, []string{items[0].Text, items[1].Text, items[2].Text})

	// Object placement is applied before projection.
	obj.Location = mesh.Vec3{X: 100}
	require.Empty(t, r.Draw(), "moved off screen")
	obj.Location = mesh.Vec3{}

	s.SetMode(session.ModeObject)
	require.Empty(t, r.Draw(), "object mode draws nothing")

	require.ErrorIs(t, r.SetSettings(overlay.Settings{LabelsSize: 99}), overlay.ErrLabelsSize)
	require.Equal(t, 20, r.Settings().LabelsSize, "rejected settings are not applied")
}

func TestDrawWithoutLayer(t *testing.T) {
	s, obj := setup(t)
	obj.Labels = nil
	r := overlay.NewRenderer(s, overlay.Viewport{Width: 100, Height: 100, Zoom: 10}, nil)

	require.NoError(t, r.SetSettings(overlay.Settings{ShowLabels: true, LabelsSize: 20}))
	require.Empty(t, r.Draw())

	require.NoError(t, r.SetSettings(overlay.Settings{ShowLabels: true, ShowIndexes: true, LabelsSize: 20}))
	require.Len(t, r.Draw(), 3, "indices need no layer")
}

func TestDrawGatingIsNotLogged(t *testing.T) {
	s, _ := setup(t)
	var logs bytes.Buffer
	r := overlay.NewRenderer(s, overlay.Viewport{Width: 100, Height: 100, Zoom: 10}, nil,
		overlay.WithLogger(log.New(&logs, "", 0)))
	require.NoError(t, r.SetSettings(overlay.Settings{ShowLabels: true, LabelsSize: 20}))

	s.SetMode(session.ModeObject)
	require.Empty(t, r.Draw())

	s.SetMode(session.ModeEdit)
	require.NoError(t, s.Add(&session.Object{Name: "Lamp", Type: session.TypeLight}))
	require.NoError(t, s.SetActive("Lamp"))
	require.Empty(t, r.Draw())

	require.Empty(t, logs.String(), "no mesh or no edit mode is not a failure")

	// A nil logger keeps the discarding default.
	quiet := overlay.NewRenderer(s, overlay.Viewport{}, nil, overlay.WithLogger(nil))
	require.Empty(t, quiet.Draw())
}

func TestLifecycle(t *testing.T) {
	s, _ := setup(t)
	frames := 0
	r := overlay.NewRenderer(s, overlay.Viewport{Width: 100, Height: 100, Zoom: 10}, func([]overlay.TextItem) { frames++ })

	s.Redraw()
	require.Zero(t, frames, "closed renderer is not subscribed")

	require.NoError(t, r.Open())
	require.ErrorIs(t, r.Open(), overlay.ErrAlreadyOpen)
	require.True(t, r.IsOpen())
	s.Redraw()
	require.Equal(t, 1, frames)

	r.Close()
	r.Close()
	require.False(t, r.IsOpen())
	require.Zero(t, s.Hub().Len())
	s.Redraw()
	require.Equal(t, 1, frames, "no callback after close")

	require.NoError(t, r.Open(), "reopen after close")
	s.Redraw()
	require.Equal(t, 2, frames)
	r.Close()
}

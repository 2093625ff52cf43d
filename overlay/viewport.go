// SPDX-License-Identifier: MIT

package overlay

import (
	"math"

	"github.com/katalvlaran/pathgraph/mesh"
)

// Viewport is an orthographic top view (looking down -Z) onto a screen of
// Width x Height pixels. Screen Y grows downwards.
type Viewport struct {
	Width, Height int
	// Center is the world point shown in the middle of the screen; Z is ignored.
	Center mesh.Vec3
	// Zoom is pixels per world unit.
	Zoom float64
}

// Project maps a world point to screen coordinates. ok is false when the
// point falls outside the screen.
func (vp Viewport) Project(p mesh.Vec3) (x, y float64, ok bool) {
	x = float64(vp.Width)/2 + (p.X-vp.Center.X)*vp.Zoom
	y = float64(vp.Height)/2 - (p.Y-vp.Center.Y)*vp.Zoom
	ok = x >= 0 && y >= 0 && x < float64(vp.Width) && y < float64(vp.Height)

	return x, y, ok
}

// Fit returns a viewport of the given size that shows every point, leaving
// margin pixels on each side.
func Fit(points []mesh.Vec3, width, height, margin int) Viewport {
	vp := Viewport{Width: width, Height: height, Zoom: 1}
	if len(points) == 0 {
		return vp
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	vp.Center = mesh.Vec3{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}

	usableW := float64(width - 2*margin - 1)
	usableH := float64(height - 2*margin - 1)
	spanX, spanY := maxX-minX, maxY-minY
	switch {
	case spanX == 0 && spanY == 0:
		vp.Zoom = 1
	case spanX == 0:
		vp.Zoom = usableH / spanY
	case spanY == 0:
		vp.Zoom = usableW / spanX
	default:
		vp.Zoom = math.Min(usableW/spanX, usableH/spanY)
	}
	if vp.Zoom <= 0 {
		vp.Zoom = 1
	}

	return vp
}

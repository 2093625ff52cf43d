// SPDX-License-Identifier: MIT

package panel

import (
	"strings"

	"github.com/katalvlaran/pathgraph/overlay"
)

// Canvas rasterizes overlay text into a width x height character grid, one
// cell per screen unit. Text starts at its projected cell and is clipped at
// the right edge; later items overwrite earlier ones.
func Canvas(items []overlay.TextItem, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}

	for _, it := range items {
		x, y := int(it.X), int(it.Y)
		if y < 0 || y >= height {
			continue
		}
		text := it.Text
		if text == "" {
			text = "."
		}
		for i, r := range []rune(text) {
			if x+i < 0 {
				continue
			}
			if x+i >= width {
				break
			}
			grid[y][x+i] = r
		}
	}

	rows := make([]string, height)
	for y, row := range grid {
		rows[y] = strings.TrimRight(string(row), " ")
	}

	return strings.Join(rows, "\n")
}

// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/compositor.go
// Summary: Flattens a scene's layer stack into the visible cell per coordinate.
// Usage: Called by exports, the terminal viewer, and host display code.

package render

import "github.com/charloom/charloom/grid"

// CellAt resolves the visible cell at (x, y) from the scene's z-ordered,
// visibility-filtered layer stack. The two visual channels resolve
// independently, scanning top to bottom:
//
//   - glyph+fg come from the topmost cell whose character is not a space;
//   - bg comes from the topmost cell whose background is not transparent.
//
// The glyph and the background of one output coordinate may therefore come
// from different layers. The result carries no animation descriptor; it is a
// display value, not a document value. Out-of-bounds coordinates return false.
func CellAt(s *grid.Scene, x, y int) (grid.Cell, bool) {
	if x < 0 || x >= s.Width() || y < 0 || y >= s.Height() {
		return grid.Cell{}, false
	}
	out := grid.DefaultCell()
	layers := s.VisibleLayers()

	for i := len(layers) - 1; i >= 0; i-- {
		c, ok := layers[i].Cell(x, y)
		if !ok {
			continue
		}
		if c.Ch != grid.EmptyCh {
			out.Ch = c.Ch
			out.Fg = c.Fg
			break
		}
	}
	for i := len(layers) - 1; i >= 0; i-- {
		c, ok := layers[i].Cell(x, y)
		if !ok {
			continue
		}
		if c.Bg != grid.TransparentBg {
			out.Bg = c.Bg
			break
		}
	}
	return out, true
}

// Region composites a h-by-w block anchored at (x, y). Out-of-bounds
// coordinates yield default cells rather than being omitted, so the result is
// always a full rectangle.
func Region(s *grid.Scene, x, y, w, h int) [][]grid.Cell {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	out := make([][]grid.Cell, h)
	for ry := 0; ry < h; ry++ {
		row := make([]grid.Cell, w)
		for rx := 0; rx < w; rx++ {
			if c, ok := CellAt(s, x+rx, y+ry); ok {
				row[rx] = c
			} else {
				row[rx] = grid.DefaultCell()
			}
		}
		out[ry] = row
	}
	return out
}

// Frame composites the whole scene.
func Frame(s *grid.Scene) [][]grid.Cell {
	return Region(s, 0, 0, s.Width(), s.Height())
}

// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/layer.go
// Summary: Fixed-size row-major grid of Cells with visibility/lock flags.
// Usage: Layers are owned by a Scene and mutated through SetCell/SetRegion.

package grid

// Layer holds a width*height row-major cell grid (index = y*width+x) plus the
// metadata the editor needs per layer. The cells slice always has exactly
// width*height entries.
//
// Out-of-range reads and writes report failure instead of panicking; the grid
// is probed constantly by hover and hit-testing collaborators.
type Layer struct {
	ID      string
	Name    string
	Visible bool
	Locked  bool

	width  int
	height int
	cells  []Cell
}

// NewLayer creates a visible, unlocked layer filled with default cells.
func NewLayer(id, name string, width, height int) *Layer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	l := &Layer{
		ID:      id,
		Name:    name,
		Visible: true,
		width:   width,
		height:  height,
		cells:   make([]Cell, width*height),
	}
	l.Clear()
	return l
}

// Width returns the layer's column count.
func (l *Layer) Width() int { return l.width }

// Height returns the layer's row count.
func (l *Layer) Height() int { return l.height }

func (l *Layer) inBounds(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

// Cell returns a copy of the cell at (x, y). The second return is false for
// out-of-range coordinates.
func (l *Layer) Cell(x, y int) (Cell, bool) {
	if !l.inBounds(x, y) {
		return Cell{}, false
	}
	return l.cells[y*l.width+x].Clone(), true
}

// SetCell stores a copy of the given cell at (x, y). It returns false, and
// writes nothing, when the coordinate is out of range.
func (l *Layer) SetCell(x, y int, c Cell) bool {
	if !l.inBounds(x, y) {
		return false
	}
	l.cells[y*l.width+x] = c.Clone()
	return true
}

// Fill sets every cell of the grid to a copy of the given cell.
func (l *Layer) Fill(c Cell) {
	for i := range l.cells {
		l.cells[i] = c.Clone()
	}
}

// Clear resets every cell to the default empty value.
func (l *Layer) Clear() {
	for i := range l.cells {
		l.cells[i] = DefaultCell()
	}
}

// Region returns a h-by-w block of cloned cells anchored at (x, y). Cells
// outside the layer's bounds come back as default cells rather than being
// omitted, so callers always get a full rectangle.
func (l *Layer) Region(x, y, w, h int) [][]Cell {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	out := make([][]Cell, h)
	for ry := 0; ry < h; ry++ {
		row := make([]Cell, w)
		for rx := 0; rx < w; rx++ {
			if c, ok := l.Cell(x+rx, y+ry); ok {
				row[rx] = c
			} else {
				row[rx] = DefaultCell()
			}
		}
		out[ry] = row
	}
	return out
}

// SetRegion writes a block of cells anchored at (x, y), clipping to the
// layer's bounds. It returns the number of cells actually written, which may
// be less than the region's size.
func (l *Layer) SetRegion(x, y int, region [][]Cell) int {
	written := 0
	for ry, row := range region {
		for rx, c := range row {
			if l.SetCell(x+rx, y+ry, c) {
				written++
			}
		}
	}
	return written
}

// Clone deep-copies the layer: the cell array and every nested animation
// descriptor are independent of the original.
func (l *Layer) Clone() *Layer {
	out := &Layer{
		ID:      l.ID,
		Name:    l.Name,
		Visible: l.Visible,
		Locked:  l.Locked,
		width:   l.width,
		height:  l.height,
		cells:   make([]Cell, len(l.cells)),
	}
	for i := range l.cells {
		out.cells[i] = l.cells[i].Clone()
	}
	return out
}

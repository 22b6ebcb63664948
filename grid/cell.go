// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cell.go
// Summary: Cell value type: one glyph, two palette indices, optional animation.
// Usage: Cells are stored inside Layers and copied at every boundary.

package grid

// Palette index constants. Colors are ANSI 8-color indices; a background of
// TransparentBg lets lower layers show through.
const (
	DefaultFg     = 7
	TransparentBg = -1
	EmptyCh       = ' '
)

// Cell is the atomic unit of the grid: a display character, a foreground and
// background palette index, and an optional animation descriptor.
//
// Cells have value semantics. A Layer never stores a caller's Cell directly
// and never hands out a Cell that aliases its internal storage; Clone is
// applied at every read and write boundary.
type Cell struct {
	Ch   rune
	Fg   int
	Bg   int
	Anim *Anim
}

// DefaultCell returns the empty cell: a space on transparent background.
func DefaultCell() Cell {
	return Cell{Ch: EmptyCh, Fg: DefaultFg, Bg: TransparentBg}
}

// Clone returns a deep copy of the cell, including the animation descriptor
// and every nested frame/color slice.
func (c Cell) Clone() Cell {
	out := c
	out.Anim = c.Anim.Clone()
	return out
}

// Animated reports whether the cell carries any animation descriptor.
func (c Cell) Animated() bool {
	return c.Anim != nil
}

// Equal compares two cells structurally, animation descriptor included.
func (c Cell) Equal(other Cell) bool {
	if c.Ch != other.Ch || c.Fg != other.Fg || c.Bg != other.Bg {
		return false
	}
	return c.Anim.Equal(other.Anim)
}

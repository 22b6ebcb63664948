// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/colors.go
// Summary: Palette-index to tcell style mapping with a small cache.

package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/charloom/charloom/grid"
)

type styleKey struct {
	fg, bg int
}

var styleCache = map[styleKey]tcell.Style{}

// styleFor maps the core's palette indices to a tcell style. A transparent
// background maps to the terminal default.
func styleFor(fg, bg int) tcell.Style {
	key := styleKey{fg, bg}
	if st, ok := styleCache[key]; ok {
		return st
	}
	st := tcell.StyleDefault
	if fg >= 0 && fg <= 7 {
		st = st.Foreground(tcell.PaletteColor(fg))
	}
	if bg == grid.TransparentBg {
		st = st.Background(tcell.ColorReset)
	} else if bg >= 0 && bg <= 7 {
		st = st.Background(tcell.PaletteColor(bg))
	}
	styleCache[key] = st
	return st
}

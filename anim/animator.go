// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/animator.go
// Summary: Pure per-cell frame computation: (cell, timestamp) -> visual state.
// Usage: Called by the engine's frame loop and directly by tests/hosts.

package anim

import "github.com/charloom/charloom/grid"

// Visual is the instantaneous rendered appearance of one cell. When Visible
// is false the glyph renders as a space while Fg/Bg keep their values, so a
// host can still paint the cell's colors.
type Visual struct {
	Ch      rune
	Fg      int
	Bg      int
	Visible bool
}

func staticVisual(c grid.Cell) Visual {
	return Visual{Ch: c.Ch, Fg: c.Fg, Bg: c.Bg, Visible: true}
}

// Animate computes the cell's appearance at the given timestamp (in
// milliseconds). It is referentially transparent: no clock reads, no hidden
// state, identical inputs produce identical frames. Cells without a
// descriptor, and descriptors of an unrecognized shape, pass their static
// fields through unchanged.
func Animate(c grid.Cell, t float64) Visual {
	a := c.Anim
	if a == nil {
		return staticVisual(c)
	}
	switch a.Kind {
	case grid.KindMultiAxis:
		return animateMultiAxis(c, a, t)
	case grid.KindLegacy:
		return animateLegacy(c, a.Legacy, t)
	default:
		return staticVisual(c)
	}
}

// animateMultiAxis resolves each present track independently. Absent tracks,
// and tracks with empty lists, keep the cell's static value for that axis.
func animateMultiAxis(c grid.Cell, a *grid.Anim, t float64) Visual {
	v := staticVisual(c)
	if g := a.Glyph; g != nil && len(g.Frames) > 0 {
		v.Ch = g.Frames[CycleIndex(t+g.Offset, g.Speed, len(g.Frames), g.Mode)]
	}
	if fg := a.Fg; fg != nil && len(fg.Colors) > 0 {
		v.Fg = fg.Colors[CycleIndex(t+fg.Offset, fg.Speed, len(fg.Colors), fg.Mode)]
	}
	if bg := a.Bg; bg != nil && len(bg.Colors) > 0 {
		v.Bg = bg.Colors[CycleIndex(t+bg.Offset, bg.Speed, len(bg.Colors), bg.Mode)]
	}
	return v
}

// defaultColorRing is the fallback color list for legacy colorCycle
// descriptors that carry no colors of their own.
var defaultColorRing = []int{0, 1, 2, 3, 4, 5, 6, 7}

func animateLegacy(c grid.Cell, l *grid.LegacyAnim, t float64) Visual {
	if l == nil {
		return staticVisual(c)
	}
	v := staticVisual(c)
	tt := t + l.Offset

	switch l.Type {
	case grid.LegacyBlink:
		phase := modFloor(segmentAt(tt, l.Speed), 2)
		if phase != 0 {
			v.Visible = false
			v.Ch = grid.EmptyCh
		}
	case grid.LegacyFlicker:
		seg := segmentAt(tt, l.Speed)
		hash := (uint64(seg) * knuthHash) % 100
		if hash <= 20 {
			v.Visible = false
			v.Ch = grid.EmptyCh
		}
	case grid.LegacyColorCycle:
		colors := l.Colors
		if len(colors) == 0 {
			colors = defaultColorRing
		}
		v.Fg = colors[CycleIndex(tt, l.Speed, len(colors), grid.CycleForward)]
	case grid.LegacyCharCycle:
		frames := l.Frames
		if len(frames) == 0 {
			frames = []rune{c.Ch}
		}
		v.Ch = frames[CycleIndex(tt, l.Speed, len(frames), grid.CycleForward)]
	default:
		// Unrecognized legacy type: passthrough.
	}
	return v
}

// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/anim.go
// Summary: Animation descriptor attached to a Cell, in its two wire shapes.
// Usage: Evaluated by the anim package; round-tripped by grid object codecs.

package grid

// CycleMode selects the traversal order of an animation's frame or color list.
type CycleMode string

const (
	CycleForward  CycleMode = "forward"
	CycleReverse  CycleMode = "reverse"
	CyclePingPong CycleMode = "pingpong"
	CycleRandom   CycleMode = "random"
)

// LegacyType identifies one of the original single-axis animation behaviors.
type LegacyType string

const (
	LegacyBlink      LegacyType = "blink"
	LegacyFlicker    LegacyType = "flicker"
	LegacyColorCycle LegacyType = "colorCycle"
	LegacyCharCycle  LegacyType = "charCycle"
)

// AnimKind tags which of the two descriptor shapes an Anim holds.
type AnimKind int

const (
	// KindMultiAxis is the current shape: up to three independent tracks,
	// one per visual axis (glyph, fg, bg).
	KindMultiAxis AnimKind = iota
	// KindLegacy is the original single-axis shape, kept for compatibility.
	// Legacy descriptors are accepted everywhere and preserved on round
	// trips; they are never silently upgraded to the multi-axis shape.
	KindLegacy
)

// GlyphTrack cycles a cell's character through a frame list.
type GlyphTrack struct {
	Frames []rune
	Speed  float64
	Offset float64
	Mode   CycleMode
}

// ColorTrack cycles a cell's foreground or background through a color list.
type ColorTrack struct {
	Colors []int
	Speed  float64
	Offset float64
	Mode   CycleMode
}

// LegacyAnim is the parameter block of the single-axis shape.
type LegacyAnim struct {
	Type   LegacyType
	Speed  float64
	Offset float64
	Colors []int
	Frames []rune
}

// Anim is a closed tagged variant over the two descriptor shapes. Exactly one
// shape is populated, selected by Kind; dispatch is always on the tag, never
// on field probing.
type Anim struct {
	Kind AnimKind

	// Multi-axis tracks; any of the three may be nil, in which case the
	// cell's static value for that axis passes through unchanged.
	Glyph *GlyphTrack
	Fg    *ColorTrack
	Bg    *ColorTrack

	// Legacy parameters, set only when Kind == KindLegacy.
	Legacy *LegacyAnim
}

func (t *GlyphTrack) clone() *GlyphTrack {
	if t == nil {
		return nil
	}
	out := *t
	out.Frames = append([]rune(nil), t.Frames...)
	return &out
}

func (t *ColorTrack) clone() *ColorTrack {
	if t == nil {
		return nil
	}
	out := *t
	out.Colors = append([]int(nil), t.Colors...)
	return &out
}

func (l *LegacyAnim) clone() *LegacyAnim {
	if l == nil {
		return nil
	}
	out := *l
	out.Colors = append([]int(nil), l.Colors...)
	out.Frames = append([]rune(nil), l.Frames...)
	return &out
}

// Clone deep-copies the descriptor. Nil receivers clone to nil so callers can
// copy a Cell's Anim unconditionally.
func (a *Anim) Clone() *Anim {
	if a == nil {
		return nil
	}
	out := &Anim{Kind: a.Kind}
	out.Glyph = a.Glyph.clone()
	out.Fg = a.Fg.clone()
	out.Bg = a.Bg.clone()
	out.Legacy = a.Legacy.clone()
	return out
}

// NormalizeMode maps the zero value to the default traversal order so an
// unset mode and an explicit forward compare and behave identically.
func NormalizeMode(m CycleMode) CycleMode {
	if m == "" {
		return CycleForward
	}
	return m
}

func (t *GlyphTrack) equal(other *GlyphTrack) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Speed != other.Speed || t.Offset != other.Offset ||
		NormalizeMode(t.Mode) != NormalizeMode(other.Mode) {
		return false
	}
	return runesEqual(t.Frames, other.Frames)
}

func (t *ColorTrack) equal(other *ColorTrack) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Speed != other.Speed || t.Offset != other.Offset ||
		NormalizeMode(t.Mode) != NormalizeMode(other.Mode) {
		return false
	}
	return intsEqual(t.Colors, other.Colors)
}

func (l *LegacyAnim) equal(other *LegacyAnim) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.Type != other.Type || l.Speed != other.Speed || l.Offset != other.Offset {
		return false
	}
	return intsEqual(l.Colors, other.Colors) && runesEqual(l.Frames, other.Frames)
}

// Equal compares two descriptors structurally. Nil equals nil.
func (a *Anim) Equal(other *Anim) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Kind != other.Kind {
		return false
	}
	return a.Glyph.equal(other.Glyph) &&
		a.Fg.equal(other.Fg) &&
		a.Bg.equal(other.Bg) &&
		a.Legacy.equal(other.Legacy)
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

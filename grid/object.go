// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/object.go
// Summary: Plain-object (JSON-shaped) serialization for cells, layers, scenes.
// Usage: Used by the snapshot and history stores and by host integrations.

package grid

import (
	"errors"
	"fmt"
)

// TrackObject is the serialized form of one multi-axis animation track.
// Glyph tracks populate Frames; color tracks populate Colors.
type TrackObject struct {
	Frames    []string `json:"frames,omitempty"`
	Colors    []int    `json:"colors,omitempty"`
	Speed     float64  `json:"speed"`
	Offset    float64  `json:"offset,omitempty"`
	CycleMode string   `json:"cycleMode,omitempty"`
}

// AnimObject is the serialized animation descriptor. The legacy single-axis
// shape sets Type; the multi-axis shape sets any of Glyph/Fg/Bg. The two
// shapes are mutually exclusive on the wire.
type AnimObject struct {
	Glyph *TrackObject `json:"glyph,omitempty"`
	Fg    *TrackObject `json:"fg,omitempty"`
	Bg    *TrackObject `json:"bg,omitempty"`

	Type   string   `json:"type,omitempty"`
	Speed  float64  `json:"speed,omitempty"`
	Offset float64  `json:"offset,omitempty"`
	Colors []int    `json:"colors,omitempty"`
	Frames []string `json:"frames,omitempty"`
}

// CellObject is the serialized cell. Anim is omitted entirely, not null, for
// static cells.
type CellObject struct {
	Ch   string      `json:"ch"`
	Fg   int         `json:"fg"`
	Bg   int         `json:"bg"`
	Anim *AnimObject `json:"anim,omitempty"`
}

// LayerObject is the serialized layer.
type LayerObject struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Visible bool         `json:"visible"`
	Locked  bool         `json:"locked"`
	Cells   []CellObject `json:"cells"`
}

// SceneObject is the serialized scene.
type SceneObject struct {
	W             int            `json:"w"`
	H             int            `json:"h"`
	PaletteID     string         `json:"paletteId"`
	ActiveLayerID string         `json:"activeLayerId"`
	Layers        []LayerObject  `json:"layers"`
	Options       map[string]any `json:"options"`
}

var (
	ErrBadDimensions = errors.New("grid: non-positive layer dimensions")
	ErrNoLayers      = errors.New("grid: scene object has no layers")
)

func runeToString(r rune) string {
	if r == 0 {
		return " "
	}
	return string(r)
}

func stringToRune(s string) rune {
	for _, r := range s {
		return r
	}
	return EmptyCh
}

func runesToStrings(rs []rune) []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = runeToString(r)
	}
	return out
}

func stringsToRunes(ss []string) []rune {
	if ss == nil {
		return nil
	}
	out := make([]rune, len(ss))
	for i, s := range ss {
		out[i] = stringToRune(s)
	}
	return out
}

func trackToObject(mode CycleMode) string {
	// Forward is the default and stays implicit on the wire.
	if mode == "" || mode == CycleForward {
		return ""
	}
	return string(mode)
}

// ToObject converts the descriptor to its wire shape.
func (a *Anim) ToObject() *AnimObject {
	if a == nil {
		return nil
	}
	if a.Kind == KindLegacy {
		if a.Legacy == nil {
			return nil
		}
		return &AnimObject{
			Type:   string(a.Legacy.Type),
			Speed:  a.Legacy.Speed,
			Offset: a.Legacy.Offset,
			Colors: append([]int(nil), a.Legacy.Colors...),
			Frames: runesToStrings(a.Legacy.Frames),
		}
	}
	obj := &AnimObject{}
	if a.Glyph != nil {
		obj.Glyph = &TrackObject{
			Frames:    runesToStrings(a.Glyph.Frames),
			Speed:     a.Glyph.Speed,
			Offset:    a.Glyph.Offset,
			CycleMode: trackToObject(a.Glyph.Mode),
		}
	}
	if a.Fg != nil {
		obj.Fg = &TrackObject{
			Colors:    append([]int(nil), a.Fg.Colors...),
			Speed:     a.Fg.Speed,
			Offset:    a.Fg.Offset,
			CycleMode: trackToObject(a.Fg.Mode),
		}
	}
	if a.Bg != nil {
		obj.Bg = &TrackObject{
			Colors:    append([]int(nil), a.Bg.Colors...),
			Speed:     a.Bg.Speed,
			Offset:    a.Bg.Offset,
			CycleMode: trackToObject(a.Bg.Mode),
		}
	}
	if obj.Glyph == nil && obj.Fg == nil && obj.Bg == nil {
		return nil
	}
	return obj
}

func objectMode(s string) CycleMode {
	if s == "" {
		return CycleForward
	}
	return CycleMode(s)
}

// AnimFromObject rebuilds a descriptor from its wire shape. A legacy "type"
// key wins over multi-axis keys, matching the mutual-exclusion contract.
func AnimFromObject(obj *AnimObject) *Anim {
	if obj == nil {
		return nil
	}
	if obj.Type != "" {
		return &Anim{
			Kind: KindLegacy,
			Legacy: &LegacyAnim{
				Type:   LegacyType(obj.Type),
				Speed:  obj.Speed,
				Offset: obj.Offset,
				Colors: append([]int(nil), obj.Colors...),
				Frames: stringsToRunes(obj.Frames),
			},
		}
	}
	a := &Anim{Kind: KindMultiAxis}
	if obj.Glyph != nil {
		a.Glyph = &GlyphTrack{
			Frames: stringsToRunes(obj.Glyph.Frames),
			Speed:  obj.Glyph.Speed,
			Offset: obj.Glyph.Offset,
			Mode:   objectMode(obj.Glyph.CycleMode),
		}
	}
	if obj.Fg != nil {
		a.Fg = &ColorTrack{
			Colors: append([]int(nil), obj.Fg.Colors...),
			Speed:  obj.Fg.Speed,
			Offset: obj.Fg.Offset,
			Mode:   objectMode(obj.Fg.CycleMode),
		}
	}
	if obj.Bg != nil {
		a.Bg = &ColorTrack{
			Colors: append([]int(nil), obj.Bg.Colors...),
			Speed:  obj.Bg.Speed,
			Offset: obj.Bg.Offset,
			Mode:   objectMode(obj.Bg.CycleMode),
		}
	}
	if a.Glyph == nil && a.Fg == nil && a.Bg == nil {
		return nil
	}
	return a
}

// ToObject converts the cell to its wire shape.
func (c Cell) ToObject() CellObject {
	return CellObject{
		Ch:   runeToString(c.Ch),
		Fg:   c.Fg,
		Bg:   c.Bg,
		Anim: c.Anim.ToObject(),
	}
}

// CellFromObject rebuilds a cell from its wire shape.
func CellFromObject(obj CellObject) Cell {
	return Cell{
		Ch:   stringToRune(obj.Ch),
		Fg:   obj.Fg,
		Bg:   obj.Bg,
		Anim: AnimFromObject(obj.Anim),
	}
}

// ToObject converts the layer, cells included, to its wire shape.
func (l *Layer) ToObject() LayerObject {
	obj := LayerObject{
		ID:      l.ID,
		Name:    l.Name,
		Width:   l.width,
		Height:  l.height,
		Visible: l.Visible,
		Locked:  l.Locked,
		Cells:   make([]CellObject, len(l.cells)),
	}
	for i, c := range l.cells {
		obj.Cells[i] = c.ToObject()
	}
	return obj
}

// LayerFromObject rebuilds a layer from its wire shape. A short cell list is
// padded with default cells; extras past width*height are dropped.
func LayerFromObject(obj LayerObject) (*Layer, error) {
	if obj.Width < 1 || obj.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, obj.Width, obj.Height)
	}
	l := NewLayer(obj.ID, obj.Name, obj.Width, obj.Height)
	l.Visible = obj.Visible
	l.Locked = obj.Locked
	for i, co := range obj.Cells {
		if i >= len(l.cells) {
			break
		}
		l.cells[i] = CellFromObject(co)
	}
	return l, nil
}

// ToObject converts the whole scene to its wire shape.
func (s *Scene) ToObject() SceneObject {
	obj := SceneObject{
		W:             s.width,
		H:             s.height,
		PaletteID:     s.PaletteID,
		ActiveLayerID: s.activeLayerID,
		Layers:        make([]LayerObject, len(s.layers)),
		Options:       make(map[string]any, len(s.Options)),
	}
	for i, l := range s.layers {
		obj.Layers[i] = l.ToObject()
	}
	for k, v := range s.Options {
		obj.Options[k] = v
	}
	return obj
}

// SceneFromObject rebuilds a scene from its wire shape. Every layer must
// match the scene's dimensions; an unknown active layer id falls back to the
// bottom layer.
func SceneFromObject(obj SceneObject) (*Scene, error) {
	if obj.W < 1 || obj.H < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, obj.W, obj.H)
	}
	if len(obj.Layers) == 0 {
		return nil, ErrNoLayers
	}
	s := &Scene{
		PaletteID: obj.PaletteID,
		Options:   make(map[string]any, len(obj.Options)),
		width:     obj.W,
		height:    obj.H,
	}
	for k, v := range obj.Options {
		s.Options[k] = v
	}
	for _, lo := range obj.Layers {
		if lo.Width != obj.W || lo.Height != obj.H {
			return nil, fmt.Errorf("grid: layer %q is %dx%d, scene is %dx%d",
				lo.ID, lo.Width, lo.Height, obj.W, obj.H)
		}
		l, err := LayerFromObject(lo)
		if err != nil {
			return nil, err
		}
		s.layers = append(s.layers, l)
	}
	s.activeLayerID = obj.ActiveLayerID
	if s.Layer(s.activeLayerID) == nil {
		s.activeLayerID = s.layers[0].ID
	}
	s.nextLayerSeq = len(s.layers)
	return s, nil
}

// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/scene.go
// Summary: Ordered layer stack sharing one set of dimensions.
// Usage: The Scene is the document root; compositing and animation read it.

package grid

import "fmt"

// Scene owns an ordered stack of layers (slice order = z-order, bottom to
// top), all sharing the scene's dimensions. A scene always contains at least
// one layer and always has a valid active layer.
type Scene struct {
	PaletteID string
	Options   map[string]any

	width         int
	height        int
	layers        []*Layer
	activeLayerID string
	nextLayerSeq  int
}

// NewScene creates a scene with a single base layer, which becomes active.
func NewScene(width, height int, paletteID string) *Scene {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s := &Scene{
		PaletteID: paletteID,
		Options:   make(map[string]any),
		width:     width,
		height:    height,
	}
	base := s.AddLayer("Background")
	s.activeLayerID = base.ID
	return s
}

// Width returns the scene's column count.
func (s *Scene) Width() int { return s.width }

// Height returns the scene's row count.
func (s *Scene) Height() int { return s.height }

// Layers returns the layer stack bottom to top. The slice is a copy; the
// layers are the scene's own.
func (s *Scene) Layers() []*Layer {
	return append([]*Layer(nil), s.layers...)
}

// Layer returns the layer with the given id, or nil.
func (s *Scene) Layer(id string) *Layer {
	for _, l := range s.layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// ActiveLayer returns the currently active layer. The scene invariant keeps
// this non-nil.
func (s *Scene) ActiveLayer() *Layer {
	return s.Layer(s.activeLayerID)
}

// ActiveLayerID returns the id of the active layer.
func (s *Scene) ActiveLayerID() string { return s.activeLayerID }

// SetActiveLayer makes the layer with the given id active. Unknown ids leave
// the scene untouched and return false.
func (s *Scene) SetActiveLayer(id string) bool {
	if s.Layer(id) == nil {
		return false
	}
	s.activeLayerID = id
	return true
}

func (s *Scene) newLayerID() string {
	for {
		s.nextLayerSeq++
		id := fmt.Sprintf("layer-%d", s.nextLayerSeq)
		if s.Layer(id) == nil {
			return id
		}
	}
}

// AddLayer appends a new empty layer on top of the stack and returns it.
func (s *Scene) AddLayer(name string) *Layer {
	l := NewLayer(s.newLayerID(), name, s.width, s.height)
	s.layers = append(s.layers, l)
	return l
}

// RemoveLayer deletes the layer with the given id. It refuses to remove the
// last remaining layer. If the removed layer was active, the first remaining
// layer becomes active.
func (s *Scene) RemoveLayer(id string) bool {
	if len(s.layers) <= 1 {
		return false
	}
	for i, l := range s.layers {
		if l.ID == id {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			if s.activeLayerID == id {
				s.activeLayerID = s.layers[0].ID
			}
			return true
		}
	}
	return false
}

// VisibleLayers returns the visible layers, bottom to top.
func (s *Scene) VisibleLayers() []*Layer {
	out := make([]*Layer, 0, len(s.layers))
	for _, l := range s.layers {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// Clone deep-copies the scene, its layers, and its options map.
func (s *Scene) Clone() *Scene {
	out := &Scene{
		PaletteID:     s.PaletteID,
		Options:       make(map[string]any, len(s.Options)),
		width:         s.width,
		height:        s.height,
		layers:        make([]*Layer, len(s.layers)),
		activeLayerID: s.activeLayerID,
		nextLayerSeq:  s.nextLayerSeq,
	}
	for k, v := range s.Options {
		out.Options[k] = v
	}
	for i, l := range s.layers {
		out.layers[i] = l.Clone()
	}
	return out
}

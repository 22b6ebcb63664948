package grid

import (
	"encoding/json"
	"testing"
)

func TestNewSceneHasBaseLayer(t *testing.T) {
	s := NewScene(10, 5, "ansi8")
	if len(s.Layers()) != 1 {
		t.Fatalf("expected exactly one layer, got %d", len(s.Layers()))
	}
	if s.ActiveLayer() == nil {
		t.Fatalf("no active layer after construction")
	}
	if s.ActiveLayer().Width() != 10 || s.ActiveLayer().Height() != 5 {
		t.Fatalf("base layer dims do not match scene")
	}
}

func TestSetActiveLayerUnknownID(t *testing.T) {
	s := NewScene(4, 4, "ansi8")
	active := s.ActiveLayerID()
	if s.SetActiveLayer("nope") {
		t.Fatalf("unknown layer id accepted")
	}
	if s.ActiveLayerID() != active {
		t.Fatalf("failed SetActiveLayer mutated state")
	}
}

func TestRemoveLayerRules(t *testing.T) {
	s := NewScene(4, 4, "ansi8")
	base := s.ActiveLayerID()

	if s.RemoveLayer(base) {
		t.Fatalf("removed the last remaining layer")
	}

	top := s.AddLayer("Top")
	if !s.SetActiveLayer(top.ID) {
		t.Fatalf("could not activate new layer")
	}
	if !s.RemoveLayer(top.ID) {
		t.Fatalf("could not remove active layer")
	}
	if s.ActiveLayerID() != base {
		t.Fatalf("active layer not retargeted to first remaining, got %q", s.ActiveLayerID())
	}
}

func TestVisibleLayersFilter(t *testing.T) {
	s := NewScene(4, 4, "ansi8")
	mid := s.AddLayer("Mid")
	s.AddLayer("Top")
	mid.Visible = false

	vis := s.VisibleLayers()
	if len(vis) != 2 {
		t.Fatalf("expected 2 visible layers, got %d", len(vis))
	}
	for _, l := range vis {
		if l.ID == mid.ID {
			t.Fatalf("hidden layer returned by VisibleLayers")
		}
	}
}

func TestLayerIDsUniqueAfterRemove(t *testing.T) {
	s := NewScene(4, 4, "ansi8")
	a := s.AddLayer("A")
	s.RemoveLayer(a.ID)
	b := s.AddLayer("B")
	if s.Layer(b.ID) != b {
		t.Fatalf("lookup by id broken")
	}
	if b.ID == a.ID && s.Layer(a.ID) != b {
		t.Fatalf("duplicate live layer ids")
	}
}

func TestSceneObjectRoundTripJSON(t *testing.T) {
	s := NewScene(6, 3, "ansi8")
	s.Options["grid"] = true
	layer := s.AddLayer("Art")
	layer.SetCell(1, 1, Cell{Ch: '@', Fg: 2, Bg: 4, Anim: &Anim{
		Kind: KindMultiAxis,
		Fg:   &ColorTrack{Colors: []int{2, 3, 4}, Speed: 120, Mode: CycleRandom},
	}})
	s.SetActiveLayer(layer.ID)

	// Through JSON, the way the stores persist it.
	data, err := json.Marshal(s.ToObject())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var obj SceneObject
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	restored, err := SceneFromObject(obj)
	if err != nil {
		t.Fatalf("SceneFromObject failed: %v", err)
	}

	if restored.Width() != 6 || restored.Height() != 3 {
		t.Fatalf("dims lost: %dx%d", restored.Width(), restored.Height())
	}
	if restored.ActiveLayerID() != layer.ID {
		t.Fatalf("active layer lost: %q", restored.ActiveLayerID())
	}
	want, _ := layer.Cell(1, 1)
	got, _ := restored.Layer(layer.ID).Cell(1, 1)
	if !want.Equal(got) {
		t.Fatalf("animated cell did not survive round trip: %#v vs %#v", want, got)
	}
}

func TestSceneFromObjectRejectsMismatchedLayer(t *testing.T) {
	s := NewScene(4, 4, "ansi8")
	obj := s.ToObject()
	obj.Layers[0].Width = 5
	if _, err := SceneFromObject(obj); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
}

func TestSceneFromObjectUnknownActiveFallsBack(t *testing.T) {
	s := NewScene(4, 4, "ansi8")
	obj := s.ToObject()
	obj.ActiveLayerID = "ghost"
	restored, err := SceneFromObject(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.ActiveLayerID() != obj.Layers[0].ID {
		t.Fatalf("active layer did not fall back to bottom layer")
	}
}

func TestSceneCloneIndependent(t *testing.T) {
	s := NewScene(4, 4, "ansi8")
	s.ActiveLayer().SetCell(0, 0, Cell{Ch: 'A', Fg: 1, Bg: -1})
	clone := s.Clone()
	clone.ActiveLayer().SetCell(0, 0, Cell{Ch: 'Z', Fg: 5, Bg: -1})

	orig, _ := s.ActiveLayer().Cell(0, 0)
	if orig.Ch != 'A' {
		t.Fatalf("scene clone shares layers with original")
	}
}

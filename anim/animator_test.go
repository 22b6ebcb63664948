package anim

import (
	"testing"

	"github.com/charloom/charloom/grid"
)

func staticCell() grid.Cell {
	return grid.Cell{Ch: '@', Fg: 2, Bg: 4}
}

func TestAnimateStaticPassthrough(t *testing.T) {
	c := staticCell()
	for _, tt := range []float64{0, 1, 999, 123456} {
		v := Animate(c, tt)
		if v.Ch != '@' || v.Fg != 2 || v.Bg != 4 || !v.Visible {
			t.Fatalf("static cell changed at t=%v: %#v", tt, v)
		}
	}
}

func TestAnimateBlink(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{Kind: grid.KindLegacy, Legacy: &grid.LegacyAnim{Type: grid.LegacyBlink, Speed: 1000}}

	cases := []struct {
		t       float64
		visible bool
	}{
		{0, true}, {999, true}, {1000, false}, {1999, false}, {2000, true},
	}
	for _, tc := range cases {
		v := Animate(c, tc.t)
		if v.Visible != tc.visible {
			t.Errorf("t=%v: visible=%v, want %v", tc.t, v.Visible, tc.visible)
		}
		if !tc.visible {
			if v.Ch != ' ' {
				t.Errorf("t=%v: hidden blink should render a space, got %q", tc.t, v.Ch)
			}
			if v.Fg != 2 || v.Bg != 4 {
				t.Errorf("t=%v: hidden blink must preserve colors, got fg=%d bg=%d", tc.t, v.Fg, v.Bg)
			}
		}
	}
}

func TestAnimateFlickerDeterministic(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{Kind: grid.KindLegacy, Legacy: &grid.LegacyAnim{Type: grid.LegacyFlicker, Speed: 100}}

	onCount := 0
	for seg := 0; seg < 200; seg++ {
		tt := float64(seg * 100)
		a := Animate(c, tt)
		b := Animate(c, tt)
		if a != b {
			t.Fatalf("flicker not deterministic at t=%v", tt)
		}
		if a.Fg != 2 || a.Bg != 4 {
			t.Fatalf("flicker must preserve colors, got %#v", a)
		}
		if a.Visible {
			onCount++
		} else if a.Ch != ' ' {
			t.Fatalf("hidden flicker should blank the glyph")
		}
	}
	// ~80% duty cycle from the segment hash.
	if onCount < 140 || onCount > 180 {
		t.Fatalf("flicker duty cycle off: %d/200 segments on", onCount)
	}
}

func TestAnimateColorCycleDefaults(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{Kind: grid.KindLegacy, Legacy: &grid.LegacyAnim{Type: grid.LegacyColorCycle, Speed: 100}}

	for i := 0; i < 8; i++ {
		v := Animate(c, float64(i*100))
		if v.Fg != i {
			t.Errorf("default ring at segment %d: fg=%d", i, v.Fg)
		}
		if v.Ch != '@' || v.Bg != 4 || !v.Visible {
			t.Errorf("colorCycle touched non-fg fields: %#v", v)
		}
	}
}

func TestAnimateColorCycleCustomList(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{Kind: grid.KindLegacy, Legacy: &grid.LegacyAnim{
		Type: grid.LegacyColorCycle, Speed: 100, Colors: []int{5, 6},
	}}
	if v := Animate(c, 0); v.Fg != 5 {
		t.Errorf("t=0: fg=%d, want 5", v.Fg)
	}
	if v := Animate(c, 100); v.Fg != 6 {
		t.Errorf("t=100: fg=%d, want 6", v.Fg)
	}
}

func TestAnimateCharCycleDefaultFrames(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{Kind: grid.KindLegacy, Legacy: &grid.LegacyAnim{Type: grid.LegacyCharCycle, Speed: 100}}
	// Missing frame list falls back to the cell's own glyph.
	for _, tt := range []float64{0, 100, 5000} {
		if v := Animate(c, tt); v.Ch != '@' {
			t.Fatalf("t=%v: default charCycle should hold static glyph, got %q", tt, v.Ch)
		}
	}
}

func TestAnimateUnknownLegacyType(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{Kind: grid.KindLegacy, Legacy: &grid.LegacyAnim{Type: "wobble", Speed: 100}}
	v := Animate(c, 12345)
	if v != staticVisual(c) {
		t.Fatalf("unknown legacy type should pass through, got %#v", v)
	}
}

func TestAnimateMultiAxisIndependent(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{
		Kind:  grid.KindMultiAxis,
		Glyph: &grid.GlyphTrack{Frames: []rune{'a', 'b'}, Speed: 100},
		Bg:    &grid.ColorTrack{Colors: []int{0, 1, 2}, Speed: 50},
	}

	v := Animate(c, 100)
	if v.Ch != 'b' {
		t.Errorf("glyph axis: got %q, want 'b'", v.Ch)
	}
	if v.Fg != 2 {
		t.Errorf("absent fg axis must keep static value, got %d", v.Fg)
	}
	if v.Bg != 2 {
		t.Errorf("bg axis: got %d, want 2", v.Bg)
	}
	if !v.Visible {
		t.Errorf("multi-axis cells are always visible")
	}
}

func TestAnimateMultiAxisOffset(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{
		Kind:  grid.KindMultiAxis,
		Glyph: &grid.GlyphTrack{Frames: []rune{'a', 'b'}, Speed: 100, Offset: 100},
	}
	if v := Animate(c, 0); v.Ch != 'b' {
		t.Fatalf("offset ignored: got %q", v.Ch)
	}
}

func TestAnimateMultiAxisEmptyTracks(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{
		Kind:  grid.KindMultiAxis,
		Glyph: &grid.GlyphTrack{Speed: 100},
		Fg:    &grid.ColorTrack{Speed: 100},
	}
	// Empty lists degrade to the static value; evaluation never panics.
	v := Animate(c, 777)
	if v != staticVisual(c) {
		t.Fatalf("empty tracks should pass through, got %#v", v)
	}
}

func TestAnimatePurity(t *testing.T) {
	c := staticCell()
	c.Anim = &grid.Anim{
		Kind: grid.KindMultiAxis,
		Fg:   &grid.ColorTrack{Colors: []int{1, 2, 3}, Speed: 33, Mode: grid.CycleRandom},
	}
	for _, tt := range []float64{0, 33, 66, 999} {
		if Animate(c, tt) != Animate(c, tt) {
			t.Fatalf("Animate not referentially transparent at t=%v", tt)
		}
	}
}

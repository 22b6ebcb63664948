package render

import (
	"testing"

	"github.com/charloom/charloom/grid"
)

// threeLayerScene sets up the compositing-independence scenario: glyph and
// background of the same coordinate resolved from different layers.
func threeLayerScene(t *testing.T) *grid.Scene {
	t.Helper()
	s := grid.NewScene(3, 3, "ansi8")
	l1 := s.ActiveLayer()
	l2 := s.AddLayer("mid")
	l3 := s.AddLayer("top")

	l1.SetCell(1, 1, grid.Cell{Ch: 'A', Fg: 1, Bg: 0})
	l2.SetCell(1, 1, grid.Cell{Ch: 'B', Fg: 2, Bg: 1})
	l3.SetCell(1, 1, grid.Cell{Ch: ' ', Fg: 3, Bg: grid.TransparentBg})
	return s
}

func TestCompositeChannelsIndependent(t *testing.T) {
	s := threeLayerScene(t)
	c, ok := CellAt(s, 1, 1)
	if !ok {
		t.Fatalf("in-bounds composite reported failure")
	}
	if c.Ch != 'B' || c.Fg != 2 {
		t.Errorf("glyph channel: got (%q, fg=%d), want ('B', fg=2)", c.Ch, c.Fg)
	}
	if c.Bg != 1 {
		t.Errorf("background channel: got bg=%d, want 1", c.Bg)
	}
}

func TestCompositeSkipsInvisibleLayers(t *testing.T) {
	s := threeLayerScene(t)
	for _, l := range s.Layers() {
		if l.Name == "mid" {
			l.Visible = false
		}
	}
	c, _ := CellAt(s, 1, 1)
	if c.Ch != 'A' || c.Fg != 1 || c.Bg != 0 {
		t.Fatalf("hidden layer leaked into composite: %#v", c)
	}
}

func TestCompositeEmptyStack(t *testing.T) {
	s := grid.NewScene(2, 2, "ansi8")
	c, ok := CellAt(s, 0, 0)
	if !ok {
		t.Fatalf("composite of empty scene failed")
	}
	if c.Ch != ' ' || c.Fg != grid.DefaultFg || c.Bg != grid.TransparentBg {
		t.Fatalf("empty composite not default: %#v", c)
	}
}

func TestCompositeOutOfBounds(t *testing.T) {
	s := grid.NewScene(2, 2, "ansi8")
	if _, ok := CellAt(s, -1, 0); ok {
		t.Errorf("out-of-bounds single query succeeded")
	}
	if _, ok := CellAt(s, 2, 0); ok {
		t.Errorf("out-of-bounds single query succeeded")
	}

	region := Region(s, 1, 1, 3, 3)
	if len(region) != 3 || len(region[0]) != 3 {
		t.Fatalf("region shape wrong")
	}
	if !region[2][2].Equal(grid.DefaultCell()) {
		t.Errorf("out-of-bounds region cell not a default cell")
	}
}

func TestCompositeStripsAnim(t *testing.T) {
	s := grid.NewScene(2, 1, "ansi8")
	s.ActiveLayer().SetCell(0, 0, grid.Cell{Ch: 'A', Fg: 1, Bg: -1, Anim: &grid.Anim{
		Kind:   grid.KindLegacy,
		Legacy: &grid.LegacyAnim{Type: grid.LegacyBlink, Speed: 500},
	}})
	c, _ := CellAt(s, 0, 0)
	if c.Anim != nil {
		t.Fatalf("composited cell carries an animation descriptor")
	}
}

func TestFrameDims(t *testing.T) {
	s := grid.NewScene(4, 3, "ansi8")
	frame := Frame(s)
	if len(frame) != 3 || len(frame[0]) != 4 {
		t.Fatalf("frame shape %dx%d, want 4x3", len(frame[0]), len(frame))
	}
}

package render

import (
	"strings"
	"testing"

	"github.com/charloom/charloom/grid"
)

func TestExportTextRows(t *testing.T) {
	s := grid.NewScene(3, 2, "ansi8")
	l := s.ActiveLayer()
	l.SetCell(0, 0, grid.Cell{Ch: 'h', Fg: 7, Bg: -1})
	l.SetCell(1, 0, grid.Cell{Ch: 'i', Fg: 7, Bg: -1})
	l.SetCell(2, 1, grid.Cell{Ch: '!', Fg: 7, Bg: -1})

	got := ExportText(s)
	want := "hi \n  !\n"
	if got != want {
		t.Fatalf("text export mismatch: %q vs %q", got, want)
	}
}

func TestExportANSISuppressesRepeatedCodes(t *testing.T) {
	s := grid.NewScene(3, 1, "ansi8")
	l := s.ActiveLayer()
	for x := 0; x < 3; x++ {
		l.SetCell(x, 0, grid.Cell{Ch: rune('a' + x), Fg: 1, Bg: 0})
	}

	got := ExportANSI(s)
	combined := "\x1b[31;40m"
	if n := strings.Count(got, combined); n != 1 {
		t.Fatalf("combined escape emitted %d times, want 1: %q", n, got)
	}
	if !strings.Contains(got, combined+"abc"+"\x1b[0m") {
		t.Fatalf("expected single code, three glyphs, one reset: %q", got)
	}
}

func TestExportANSIFgOnlyWhenTransparent(t *testing.T) {
	s := grid.NewScene(1, 1, "ansi8")
	s.ActiveLayer().SetCell(0, 0, grid.Cell{Ch: 'x', Fg: 3, Bg: grid.TransparentBg})

	got := ExportANSI(s)
	if !strings.Contains(got, "\x1b[33m") {
		t.Fatalf("missing fg-only escape: %q", got)
	}
	if strings.Contains(got, ";4") {
		t.Fatalf("transparent bg emitted a background code: %q", got)
	}
}

func TestExportANSIResetPerRow(t *testing.T) {
	s := grid.NewScene(2, 3, "ansi8")
	got := ExportANSI(s)
	if n := strings.Count(got, "\x1b[0m"); n != 3 {
		t.Fatalf("expected one reset per row (3), got %d: %q", n, got)
	}
	if n := strings.Count(got, "\n"); n != 3 {
		t.Fatalf("expected 3 row terminators, got %d", n)
	}
}

func TestExportANSICodeChangesMidRow(t *testing.T) {
	s := grid.NewScene(3, 1, "ansi8")
	l := s.ActiveLayer()
	l.SetCell(0, 0, grid.Cell{Ch: 'a', Fg: 1, Bg: 0})
	l.SetCell(1, 0, grid.Cell{Ch: 'b', Fg: 1, Bg: 0})
	l.SetCell(2, 0, grid.Cell{Ch: 'c', Fg: 2, Bg: 0})

	got := ExportANSI(s)
	if !strings.Contains(got, "\x1b[31;40mab\x1b[32;40mc") {
		t.Fatalf("expected code re-emit only on change: %q", got)
	}
}

func TestExportTextWideRune(t *testing.T) {
	s := grid.NewScene(3, 1, "ansi8")
	s.ActiveLayer().SetCell(0, 0, grid.Cell{Ch: '気', Fg: 7, Bg: -1})
	s.ActiveLayer().SetCell(2, 0, grid.Cell{Ch: 'x', Fg: 7, Bg: -1})

	got := ExportText(s)
	if got != "気x\n" {
		t.Fatalf("wide rune should consume the following column: %q", got)
	}
}

package config

import "testing"

func TestSanitizeClampsBadValues(t *testing.T) {
	cfg := Config{GridWidth: -3, GridHeight: 0, FPS: 9999}
	sanitize(&cfg, "/tmp/charloom-test")

	def := defaults()
	if cfg.GridWidth != def.GridWidth || cfg.GridHeight != def.GridHeight {
		t.Fatalf("grid dims not clamped: %dx%d", cfg.GridWidth, cfg.GridHeight)
	}
	if cfg.FPS != def.FPS {
		t.Fatalf("fps not clamped: %d", cfg.FPS)
	}
	if cfg.PaletteID == "" || cfg.SyntaxStyle == "" {
		t.Fatalf("empty ids not defaulted")
	}
}

func TestSanitizeKeepsGoodValues(t *testing.T) {
	cfg := Config{
		GridWidth:    120,
		GridHeight:   40,
		FPS:          30,
		PaletteID:    "custom",
		SnapshotPath: "/elsewhere/snap.json",
	}
	sanitize(&cfg, "/tmp/charloom-test")
	if cfg.GridWidth != 120 || cfg.GridHeight != 40 || cfg.FPS != 30 {
		t.Fatalf("valid values rewritten: %#v", cfg)
	}
	if cfg.SnapshotPath != "/elsewhere/snap.json" {
		t.Fatalf("explicit snapshot path rewritten")
	}
	if cfg.HistoryPath == "" {
		t.Fatalf("missing history path not defaulted")
	}
}

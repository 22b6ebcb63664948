// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values and sanitization for the editor configuration.

package config

import "path/filepath"

func defaults() Config {
	return Config{
		GridWidth:   80,
		GridHeight:  24,
		FPS:         60,
		PaletteID:   "ansi8",
		SyntaxStyle: "catppuccin-mocha",
	}
}

func applyPathDefaults(cfg *Config, dir string) {
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = filepath.Join(dir, "snapshot.json")
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = filepath.Join(dir, "history.db")
	}
}

// sanitize clamps loaded values to usable ranges so a hand-edited file can
// not wedge the editor.
func sanitize(cfg *Config, dir string) {
	def := defaults()
	if cfg.GridWidth < 1 {
		cfg.GridWidth = def.GridWidth
	}
	if cfg.GridHeight < 1 {
		cfg.GridHeight = def.GridHeight
	}
	if cfg.FPS < 1 || cfg.FPS > 240 {
		cfg.FPS = def.FPS
	}
	if cfg.PaletteID == "" {
		cfg.PaletteID = def.PaletteID
	}
	if cfg.SyntaxStyle == "" {
		cfg.SyntaxStyle = def.SyntaxStyle
	}
	applyPathDefaults(cfg, dir)
}

// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: importer/text.go
// Summary: Imports plain text into a layer, one rune per cell.
// Usage: Backs the CLI -import path and drag-in text for hosts.

package importer

import (
	"os"
	"strings"

	"github.com/charloom/charloom/grid"
)

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

func textDims(lines []string) (int, int) {
	w := 1
	for _, line := range lines {
		if n := len([]rune(line)); n > w {
			w = n
		}
	}
	return w, len(lines)
}

// TextToLayer converts text into a new layer sized to fit it, one rune per
// cell, default colors. Tabs expand to four columns.
func TextToLayer(text, id, name string) *grid.Layer {
	lines := splitLines(expandTabs(text))
	w, h := textDims(lines)
	layer := grid.NewLayer(id, name, w, h)
	for y, line := range lines {
		for x, r := range []rune(line) {
			layer.SetCell(x, y, grid.Cell{Ch: r, Fg: grid.DefaultFg, Bg: grid.TransparentBg})
		}
	}
	return layer
}

func expandTabs(text string) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	return strings.ReplaceAll(text, "\t", "    ")
}

// ImportFile reads a file and imports it as a plain-text layer named after
// the file.
func ImportFile(path, id string) (*grid.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return TextToLayer(string(data), id, path), nil
}

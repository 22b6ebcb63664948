// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/export.go
// Summary: Plain-text and ANSI exports of a composited scene.
// Usage: Used by the CLI export commands and by clipboard-style hosts.

package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/charloom/charloom/grid"
)

const sgrReset = "\x1b[0m"

// ExportText renders the composited scene as plain text, one line per grid
// row, glyphs only. A double-width glyph consumes the following column, so
// the cell behind it is not emitted.
func ExportText(s *grid.Scene) string {
	frame := Frame(s)
	var sb strings.Builder
	for _, row := range frame {
		skip := false
		for _, c := range row {
			if skip {
				skip = false
				continue
			}
			sb.WriteRune(c.Ch)
			if runewidth.RuneWidth(c.Ch) == 2 {
				skip = true
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// sgr builds the color escape for a cell. Foreground maps to SGR 30-37;
// a non-transparent background adds 40-47 in the same sequence.
func sgr(fg, bg int) string {
	if bg == grid.TransparentBg {
		return fmt.Sprintf("\x1b[%dm", 30+fg)
	}
	return fmt.Sprintf("\x1b[%d;%dm", 30+fg, 40+bg)
}

// ExportANSI renders the composited scene with ANSI colors. Within a row a
// color escape is emitted only when fg or bg differs from the previous cell;
// an unchanged code is never re-emitted. Every row ends with a reset.
func ExportANSI(s *grid.Scene) string {
	frame := Frame(s)
	var sb strings.Builder
	for _, row := range frame {
		lastFg, lastBg := -1, -1
		first := true
		skip := false
		for _, c := range row {
			if skip {
				skip = false
				continue
			}
			if first || c.Fg != lastFg || c.Bg != lastBg {
				sb.WriteString(sgr(c.Fg, c.Bg))
				lastFg, lastBg = c.Fg, c.Bg
				first = false
			}
			sb.WriteRune(c.Ch)
			if runewidth.RuneWidth(c.Ch) == 2 {
				skip = true
			}
		}
		sb.WriteString(sgrReset)
		sb.WriteByte('\n')
	}
	return sb.String()
}

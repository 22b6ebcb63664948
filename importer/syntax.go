// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: importer/syntax.go
// Summary: Syntax-colored source import via chroma token streams.
// Usage: ImportSource detects the language, tokenizes, and paints cells.

package importer

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/charloom/charloom/grid"
)

const defaultStyleName = "catppuccin-mocha"

// paletteRGB holds bright reference RGB values for the 8 palette entries.
var paletteRGB = [8][3]int{
	{0, 0, 0},       // black
	{255, 85, 85},   // red
	{85, 255, 85},   // green
	{255, 255, 85},  // yellow
	{85, 85, 255},   // blue
	{255, 85, 255},  // magenta
	{85, 255, 255},  // cyan
	{255, 255, 255}, // white
}

// nearestPaletteIndex quantizes a token color to the 8-entry palette. The
// color is brightness-normalized first: syntax themes lean on pastels, and
// comparing those against the palette at face value collapses every hue
// into white. Scaling the brightest channel to full range keeps the hue.
func nearestPaletteIndex(c chroma.Colour) int {
	if !c.IsSet() {
		return grid.DefaultFg
	}
	r, g, b := int(c.Red()), int(c.Green()), int(c.Blue())
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	if max < 48 {
		return 0
	}
	r, g, b = r*255/max, g*255/max, b*255/max

	best, bestDist := grid.DefaultFg, int(^uint(0)>>1)
	for i, p := range paletteRGB {
		dr, dg, db := r-p[0], g-p[1], b-p[2]
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// resolveLexer picks a lexer by enry language detection first, then chroma's
// own content analysis, then the fallback plain-text lexer.
func resolveLexer(filename, text string) chroma.Lexer {
	name := ""
	if filename != "" {
		name = filepath.Base(filename)
	}
	if lang := enry.GetLanguage(name, []byte(text)); lang != "" && lang != enry.OtherLanguage {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// ImportSource imports source code as a colored layer: the text is tokenized
// with chroma, each token's style color is quantized to the 8-color palette,
// and the glyphs land one rune per cell. Tokenization failures degrade to a
// plain uncolored import rather than failing the import.
func ImportSource(text, filename, id, styleName string) *grid.Layer {
	text = expandTabs(text)
	layer := TextToLayer(text, id, filename)

	if styleName == "" {
		styleName = defaultStyleName
	}
	style := styles.Get(styleName)

	lexer := chroma.Coalesce(resolveLexer(filename, text))
	iterator, err := lexer.Tokenise(nil, strings.TrimSuffix(text, "\n")+"\n")
	if err != nil {
		log.Printf("Importer: tokenize %s failed, importing plain: %v", filename, err)
		return layer
	}

	x, y := 0, 0
	for _, token := range iterator.Tokens() {
		fg := nearestPaletteIndex(style.Get(token.Type).Colour)
		for _, r := range token.Value {
			if r == '\n' {
				x, y = 0, y+1
				continue
			}
			if r == '\r' {
				continue
			}
			if c, ok := layer.Cell(x, y); ok && c.Ch == r {
				c.Fg = fg
				layer.SetCell(x, y, c)
			}
			x++
		}
	}
	return layer
}

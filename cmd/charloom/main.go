// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/charloom/main.go
// Summary: Command-line entry point: load/import scenes, export, play.
// Usage: Run `charloom -h` for the flag reference.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/charloom/charloom/config"
	"github.com/charloom/charloom/grid"
	"github.com/charloom/charloom/importer"
	"github.com/charloom/charloom/render"
	"github.com/charloom/charloom/store"
	"github.com/charloom/charloom/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("charloom", flag.ContinueOnError)

	loadPath := fs.String("load", "", "Load a scene snapshot (JSON)")
	importPath := fs.String("import", "", "Import a text file as a new scene layer")
	importSrc := fs.Bool("syntax", false, "Syntax-color the imported file")
	size := fs.String("size", "", "Scene size as WxH (default from config)")
	exportFormat := fs.String("export", "", "Write the composited scene to stdout: text or ansi")
	savePath := fs.String("save", "", "Save the scene snapshot to this path")
	historySave := fs.String("history-save", "", "Append the scene to the revision history with this label")
	historyList := fs.Bool("history-list", false, "List stored revisions and exit")
	play := fs.Bool("play", false, "Play the scene's animations in the terminal")
	demo := fs.Bool("demo", false, "Build the built-in animated demo scene")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	cfg := config.Get()
	if err := config.Err(); err != nil {
		log.Printf("Main: config load degraded to defaults: %v", err)
	}

	if *historyList {
		return listHistory(cfg.HistoryPath)
	}

	scene, err := buildScene(cfg, *loadPath, *importPath, *importSrc, *size, *demo)
	if err != nil {
		return err
	}

	if *historySave != "" {
		if err := appendHistory(cfg.HistoryPath, *historySave, scene); err != nil {
			return err
		}
	}
	if *savePath != "" {
		if err := store.NewSnapshotStore(*savePath).Save(scene); err != nil {
			return err
		}
	}

	switch *exportFormat {
	case "":
	case "text":
		fmt.Print(render.ExportText(scene))
	case "ansi":
		fmt.Print(render.ExportANSI(scene))
	default:
		return fmt.Errorf("unknown export format %q", *exportFormat)
	}

	if *play {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("-play needs a terminal on stdout")
		}
		viewer, err := tui.NewViewer(scene, cfg.FPS)
		if err != nil {
			return err
		}
		defer viewer.Close()
		return viewer.Run()
	}
	return nil
}

func parseSize(s string, cfg config.Config) (int, int, error) {
	if s == "" {
		return cfg.GridWidth, cfg.GridHeight, nil
	}
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("bad -size %q, want WxH", s)
	}
	return w, h, nil
}

func buildScene(cfg config.Config, loadPath, importPath string, syntax bool, size string, demo bool) (*grid.Scene, error) {
	if loadPath != "" {
		return store.NewSnapshotStore(loadPath).Load()
	}

	w, h, err := parseSize(size, cfg)
	if err != nil {
		return nil, err
	}
	scene := grid.NewScene(w, h, cfg.PaletteID)

	if importPath != "" {
		if err := importInto(scene, importPath, syntax, cfg.SyntaxStyle); err != nil {
			return nil, err
		}
	}
	if demo {
		buildDemo(scene)
	}
	return scene, nil
}

// importInto pastes the imported file into the scene's active layer,
// clipped to the scene's bounds.
func importInto(scene *grid.Scene, path string, syntax bool, styleName string) error {
	var layer *grid.Layer
	if syntax {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		layer = importer.ImportSource(string(data), path, "import", styleName)
	} else {
		var err error
		layer, err = importer.ImportFile(path, "import")
		if err != nil {
			return err
		}
	}
	region := layer.Region(0, 0, layer.Width(), layer.Height())
	written := scene.ActiveLayer().SetRegion(0, 0, region)
	log.Printf("Main: imported %s (%d cells)", path, written)
	return nil
}

func appendHistory(path, label string, scene *grid.Scene) error {
	h, err := store.OpenHistory(path)
	if err != nil {
		return err
	}
	defer h.Close()
	id, err := h.SaveRevision(label, scene)
	if err != nil {
		return err
	}
	fmt.Printf("Saved revision %d (%s)\n", id, label)
	return nil
}

func listHistory(path string) error {
	h, err := store.OpenHistory(path)
	if err != nil {
		return err
	}
	defer h.Close()
	revs, err := h.Revisions(0)
	if err != nil {
		return err
	}
	if len(revs) == 0 {
		fmt.Println("No revisions.")
		return nil
	}
	for _, r := range revs {
		fmt.Printf("%6d  %s  %8d bytes  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Size, r.Label)
	}
	return nil
}

// buildDemo drops a handful of animated cells onto a fresh layer so playback
// has something to show out of the box.
func buildDemo(scene *grid.Scene) {
	layer := scene.AddLayer("Demo")

	spinner := grid.Cell{Ch: '|', Fg: 6, Bg: grid.TransparentBg, Anim: &grid.Anim{
		Kind:  grid.KindMultiAxis,
		Glyph: &grid.GlyphTrack{Frames: []rune{'|', '/', '-', '\\'}, Speed: 120, Mode: grid.CycleForward},
	}}
	layer.SetCell(2, 1, spinner)

	pulse := grid.Cell{Ch: '*', Fg: 3, Bg: grid.TransparentBg, Anim: &grid.Anim{
		Kind: grid.KindMultiAxis,
		Fg:   &grid.ColorTrack{Colors: []int{1, 3, 7, 3}, Speed: 150, Mode: grid.CyclePingPong},
	}}
	layer.SetCell(4, 1, pulse)

	beacon := grid.Cell{Ch: '@', Fg: 2, Bg: grid.TransparentBg, Anim: &grid.Anim{
		Kind:   grid.KindLegacy,
		Legacy: &grid.LegacyAnim{Type: grid.LegacyBlink, Speed: 500},
	}}
	layer.SetCell(6, 1, beacon)

	ember := grid.Cell{Ch: '#', Fg: 1, Bg: grid.TransparentBg, Anim: &grid.Anim{
		Kind:   grid.KindLegacy,
		Legacy: &grid.LegacyAnim{Type: grid.LegacyFlicker, Speed: 80},
	}}
	layer.SetCell(8, 1, ember)
}

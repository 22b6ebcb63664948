// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/viewer.go
// Summary: Terminal scene viewer: composites to a tcell screen and hosts the
//          animation engine's render sink.
// Usage: Created by the CLI play command; 'q'/Esc quits, space toggles play.

package tui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/charloom/charloom/anim"
	"github.com/charloom/charloom/event"
	"github.com/charloom/charloom/grid"
)

type overrideKey struct {
	layerID string
	x, y    int
}

// Viewer displays one scene in the terminal. Static content comes from the
// compositing rules; animated cells arrive through the engine's render sink
// as per-layer visual overrides and are folded into compositing at draw time.
type Viewer struct {
	screen tcell.Screen
	scene  *grid.Scene
	bus    *event.Bus
	engine *anim.Engine

	mu        sync.Mutex
	overrides map[overrideKey]anim.Visual

	refreshChan chan bool
	quit        chan struct{}
	closeOnce   sync.Once
}

// NewViewer initializes the terminal and wires a playback engine for the
// scene at the given frame rate.
func NewViewer(scene *grid.Scene, fps int) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()

	if fps < 1 {
		fps = 60
	}
	v := &Viewer{
		screen:      screen,
		scene:       scene,
		bus:         event.NewBus(),
		overrides:   make(map[overrideKey]anim.Visual),
		refreshChan: make(chan bool, 1),
		quit:        make(chan struct{}),
	}
	sched := anim.NewTickerScheduler(time.Second / time.Duration(fps))
	v.engine = anim.NewEngine(scene, v.sink, v.bus, sched)
	return v, nil
}

// Bus exposes the viewer's event bus so hosts can observe playback.
func (v *Viewer) Bus() *event.Bus { return v.bus }

// Engine exposes the playback engine.
func (v *Viewer) Engine() *anim.Engine { return v.engine }

// sink is the engine's render sink: it stores the visual override for the
// cell and requests a redraw.
func (v *Viewer) sink(layerID string, x, y int, vis anim.Visual) {
	v.mu.Lock()
	v.overrides[overrideKey{layerID, x, y}] = vis
	v.mu.Unlock()
	v.requestRefresh()
}

func (v *Viewer) requestRefresh() {
	select {
	case v.refreshChan <- true:
	default:
	}
}

// layerVisual returns the effective appearance of one layer's cell, applying
// any animated override.
func (v *Viewer) layerVisual(l *grid.Layer, x, y int) (anim.Visual, bool) {
	c, ok := l.Cell(x, y)
	if !ok {
		return anim.Visual{}, false
	}
	v.mu.Lock()
	vis, overridden := v.overrides[overrideKey{l.ID, x, y}]
	v.mu.Unlock()
	if overridden {
		return vis, true
	}
	return anim.Visual{Ch: c.Ch, Fg: c.Fg, Bg: c.Bg, Visible: true}, true
}

// compositeAt flattens the visible layer stack at (x, y) with overrides
// applied, using the same independent-channel rules as the core compositor:
// glyph+fg from the topmost non-space cell, bg from the topmost
// non-transparent cell. A hidden animated cell counts as a space.
func (v *Viewer) compositeAt(layers []*grid.Layer, x, y int) (rune, tcell.Style) {
	ch := grid.EmptyCh
	fg := grid.DefaultFg
	bg := grid.TransparentBg

	for i := len(layers) - 1; i >= 0; i-- {
		vis, ok := v.layerVisual(layers[i], x, y)
		if !ok {
			continue
		}
		glyph := vis.Ch
		if !vis.Visible {
			glyph = grid.EmptyCh
		}
		if glyph != grid.EmptyCh {
			ch = glyph
			fg = vis.Fg
			break
		}
	}
	for i := len(layers) - 1; i >= 0; i-- {
		vis, ok := v.layerVisual(layers[i], x, y)
		if !ok {
			continue
		}
		if vis.Bg != grid.TransparentBg {
			bg = vis.Bg
			break
		}
	}
	return ch, styleFor(fg, bg)
}

// draw repaints the whole scene. tcell diffs against its own back buffer, so
// repainting is cheap; the engine's diffing keeps the override churn low.
func (v *Viewer) draw() {
	layers := v.scene.VisibleLayers()
	for y := 0; y < v.scene.Height(); y++ {
		skip := false
		for x := 0; x < v.scene.Width(); x++ {
			if skip {
				skip = false
				continue
			}
			ch, style := v.compositeAt(layers, x, y)
			v.screen.SetContent(x, y, ch, nil, style)
			if runewidth.RuneWidth(ch) == 2 {
				skip = true
			}
		}
	}
	v.screen.Show()
}

// Run starts playback and blocks until the user quits.
func (v *Viewer) Run() error {
	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-v.quit:
				return
			}
		}
	}()

	v.draw()
	v.engine.Start()

	for {
		select {
		case ev := <-eventChan:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case tev.Key() == tcell.KeyEscape, tev.Rune() == 'q':
					return nil
				case tev.Rune() == ' ':
					if !v.engine.Toggle() {
						// Stop restored static cells; drop stale overrides.
						v.mu.Lock()
						v.overrides = make(map[overrideKey]anim.Visual)
						v.mu.Unlock()
					}
					v.requestRefresh()
				}
			case *tcell.EventResize:
				v.screen.Sync()
				v.requestRefresh()
			}
		case <-v.refreshChan:
			v.draw()
		case <-v.quit:
			return nil
		}
	}
}

// Close stops the engine and restores the terminal. Safe to call twice.
func (v *Viewer) Close() {
	v.closeOnce.Do(func() {
		close(v.quit)
		v.engine.Dispose()
		v.screen.Fini()
	})
}

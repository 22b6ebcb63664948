// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/engine.go
// Summary: Stateful animation driver: scan, frame loop, diff, push changes.
// Usage: One engine per scene; the host supplies the render sink and bus.

package anim

import (
	"sync"

	"github.com/charloom/charloom/event"
	"github.com/charloom/charloom/grid"
)

// Bus event names announced by the engine.
const (
	EventStarted = "animation:started"
	EventStopped = "animation:stopped"
	EventFrame   = "animation:frame"
)

// FramePayload is the data carried by an animation:frame event.
type FramePayload struct {
	LayerID string
	X, Y    int
	Visual  Visual
}

// Sink receives rendered cell updates. It is invoked with the engine's
// internal lock held and must not block or call back into the engine.
type Sink func(layerID string, x, y int, v Visual)

// Coord addresses one cell within a layer.
type Coord struct {
	X, Y int
}

type cellKey struct {
	layerID string
	x, y    int
}

// Engine walks the scene for animated cells, runs a scheduler-paced frame
// loop, and pushes a cell to the sink only when its computed appearance
// differs from the last value pushed for that coordinate. Suppressing
// redundant pushes is the engine's central performance contract.
//
// The engine keeps two derived caches: the animated-cell index (layer id ->
// coordinates) and the last-pushed visual per coordinate. Both are rebuilt
// only on explicit Scan/Refresh/Dispose calls, never behind the caller's
// back; structural scene edits require a Refresh.
//
// A mutex serializes frame callbacks (which arrive on scheduler goroutines
// under TickerScheduler) against host calls, so the engine is safe to drive
// from a UI event loop while playing. Cancellation is ordered: Stop cancels
// the pending frame callback and restores static cells in one critical
// section, so a frame callback that already fired either completes before
// the restore or observes the stopped state and does nothing.
type Engine struct {
	scene *grid.Scene
	sink  Sink
	bus   *event.Bus
	sched Scheduler

	mu      sync.Mutex
	playing bool
	token   Token
	cells   map[string][]Coord
	last    map[cellKey]Visual
}

// NewEngine creates an engine over the scene and performs the initial scan.
// The bus may be nil when the host has no interest in lifecycle events.
func NewEngine(scene *grid.Scene, sink Sink, bus *event.Bus, sched Scheduler) *Engine {
	e := &Engine{
		scene: scene,
		sink:  sink,
		bus:   bus,
		sched: sched,
		cells: make(map[string][]Coord),
		last:  make(map[cellKey]Visual),
	}
	e.Scan()
	return e
}

// emit runs outside the engine lock so listeners may call back in.
func (e *Engine) emit(name string, data any) {
	if e.bus != nil {
		e.bus.Emit(name, data)
	}
}

// Scan rebuilds the animated-cell index from a full walk of every layer.
// Layers with no animated cells get no entry. Stale last-pushed values for
// coordinates that are no longer tracked are dropped.
func (e *Engine) Scan() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scan()
}

func (e *Engine) scan() {
	e.cells = make(map[string][]Coord)
	for _, layer := range e.scene.Layers() {
		var coords []Coord
		for y := 0; y < layer.Height(); y++ {
			for x := 0; x < layer.Width(); x++ {
				c, ok := layer.Cell(x, y)
				if ok && c.Animated() {
					coords = append(coords, Coord{X: x, Y: y})
				}
			}
		}
		if len(coords) > 0 {
			e.cells[layer.ID] = coords
		}
	}

	tracked := make(map[cellKey]bool)
	for id, coords := range e.cells {
		for _, co := range coords {
			tracked[cellKey{id, co.X, co.Y}] = true
		}
	}
	for key := range e.last {
		if !tracked[key] {
			delete(e.last, key)
		}
	}
}

// Refresh re-runs the scan to pick up structural edits made during or
// outside playback.
func (e *Engine) Refresh() {
	e.Scan()
}

// AnimatedCellCount returns the number of tracked animated cells.
func (e *Engine) AnimatedCellCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, coords := range e.cells {
		n += len(coords)
	}
	return n
}

// Playing reports whether the frame loop is running.
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

func (e *Engine) frame(t float64) {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}
	frames := e.update(t)
	e.token = e.sched.ScheduleNext(e.frame)
	e.mu.Unlock()
	for _, f := range frames {
		e.emit(EventFrame, f)
	}
}

// Start begins playback. Calling Start while playing is a no-op; the running
// loop keeps its identity and no event is re-announced.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.playing {
		e.mu.Unlock()
		return
	}
	e.playing = true
	e.token = e.sched.ScheduleNext(e.frame)
	e.mu.Unlock()
	e.emit(EventStarted, nil)
}

// Stop ends playback: the pending frame callback is canceled and every
// tracked cell's static appearance is pushed back through the sink in one
// critical section, then the stopped event fires. A frame callback already
// in flight when Stop runs observes the stopped state and does nothing, so
// no animated frame can repaint over the restored cells. Calling Stop while
// stopped is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}
	e.sched.Cancel(e.token)
	e.playing = false
	e.restore()
	e.mu.Unlock()
	e.emit(EventStopped, nil)
}

// Toggle stops when playing and starts when stopped, returning the resulting
// playing state.
func (e *Engine) Toggle() bool {
	if e.Playing() {
		e.Stop()
		return false
	}
	e.Start()
	return true
}

// Update computes the frame at timestamp t for every tracked cell. Cells on
// hidden layers are skipped entirely. The sink is invoked only when the
// computed (ch, fg, bg, visible) tuple differs from the last pushed value;
// the cached value is refreshed either way so repeated ties stay cheap.
func (e *Engine) Update(t float64) {
	e.mu.Lock()
	frames := e.update(t)
	e.mu.Unlock()
	for _, f := range frames {
		e.emit(EventFrame, f)
	}
}

func (e *Engine) update(t float64) []FramePayload {
	var frames []FramePayload
	for layerID, coords := range e.cells {
		layer := e.scene.Layer(layerID)
		if layer == nil || !layer.Visible {
			continue
		}
		for _, co := range coords {
			c, ok := layer.Cell(co.X, co.Y)
			if !ok {
				continue
			}
			v := Animate(c, t)
			key := cellKey{layerID, co.X, co.Y}
			prev, seen := e.last[key]
			if !seen || v != prev {
				e.sink(layerID, co.X, co.Y, v)
				frames = append(frames, FramePayload{LayerID: layerID, X: co.X, Y: co.Y, Visual: v})
			}
			e.last[key] = v
		}
	}
	return frames
}

// Restore pushes every tracked coordinate's static appearance through the
// sink unconditionally, clearing any animated frame left on screen.
func (e *Engine) Restore() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.restore()
}

func (e *Engine) restore() {
	for layerID, coords := range e.cells {
		layer := e.scene.Layer(layerID)
		if layer == nil {
			continue
		}
		for _, co := range coords {
			c, ok := layer.Cell(co.X, co.Y)
			if !ok {
				continue
			}
			v := Visual{Ch: c.Ch, Fg: c.Fg, Bg: c.Bg, Visible: true}
			e.sink(layerID, co.X, co.Y, v)
			e.last[cellKey{layerID, co.X, co.Y}] = v
		}
	}
}

// Dispose stops playback if needed and clears both caches, returning the
// engine to a fresh, reusable state.
func (e *Engine) Dispose() {
	e.Stop()
	e.mu.Lock()
	e.cells = make(map[string][]Coord)
	e.last = make(map[cellKey]Visual)
	e.mu.Unlock()
}

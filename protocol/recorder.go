// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/recorder.go
// Summary: Render sink that batches engine pushes into frame deltas.
// Usage: Plug Record into the animation engine; Flush per network tick.

package protocol

import (
	"sort"
	"sync"

	"github.com/charloom/charloom/anim"
)

// DeltaRecorder accumulates cell updates pushed by the animation engine and
// turns them into compact FrameDeltas. The engine already suppresses
// redundant pushes, so everything recorded between two flushes is a genuine
// change; the recorder only has to group changes into row spans.
type DeltaRecorder struct {
	mu       sync.Mutex
	revision uint32
	pending  map[string]map[[2]int]anim.Visual
}

// NewDeltaRecorder creates an empty recorder.
func NewDeltaRecorder() *DeltaRecorder {
	return &DeltaRecorder{pending: make(map[string]map[[2]int]anim.Visual)}
}

// Record stores one cell update. Its signature matches the engine's sink
// contract, so the recorder can be passed directly as anim.Sink.
func (r *DeltaRecorder) Record(layerID string, x, y int, v anim.Visual) {
	if x < 0 || y < 0 || x > 0xFFFF || y > 0xFFFF {
		return
	}
	r.mu.Lock()
	layer := r.pending[layerID]
	if layer == nil {
		layer = make(map[[2]int]anim.Visual)
		r.pending[layerID] = layer
	}
	layer[[2]int{x, y}] = v
	r.mu.Unlock()
}

// Pending reports how many cell updates are waiting to be flushed.
func (r *DeltaRecorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, layer := range r.pending {
		n += len(layer)
	}
	return n
}

func styleFor(v anim.Visual) StyleEntry {
	fg := v.Fg
	if fg < 0 || fg > 7 {
		fg = 7
	}
	bg := v.Bg
	if bg < -1 || bg > 7 {
		bg = -1
	}
	return StyleEntry{Fg: uint8(fg), Bg: int8(bg), Blank: !v.Visible}
}

// Flush drains the recorder into one FrameDelta per layer with updates, all
// stamped with the same incremented revision. Adjacent cells on a row that
// share a style merge into one span. Deltas come back sorted by layer id;
// rows and spans are in grid order.
func (r *DeltaRecorder) Flush() []FrameDelta {
	r.mu.Lock()
	pending := r.pending
	r.pending = make(map[string]map[[2]int]anim.Visual)
	r.revision++
	rev := r.revision
	r.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	layerIDs := make([]string, 0, len(pending))
	for id := range pending {
		layerIDs = append(layerIDs, id)
	}
	sort.Strings(layerIDs)

	deltas := make([]FrameDelta, 0, len(layerIDs))
	for _, id := range layerIDs {
		deltas = append(deltas, buildDelta(id, rev, pending[id]))
	}
	return deltas
}

func buildDelta(layerID string, rev uint32, cells map[[2]int]anim.Visual) FrameDelta {
	delta := FrameDelta{LayerID: layerID, Revision: rev}
	styleIndex := make(map[StyleEntry]uint16)

	byRow := make(map[int][][2]int)
	for pos := range cells {
		byRow[pos[1]] = append(byRow[pos[1]], pos)
	}
	rows := make([]int, 0, len(byRow))
	for y := range byRow {
		rows = append(rows, y)
	}
	sort.Ints(rows)

	for _, y := range rows {
		positions := byRow[y]
		sort.Slice(positions, func(i, j int) bool { return positions[i][0] < positions[j][0] })

		row := RowDelta{Row: uint16(y)}
		var span *CellSpan
		lastX := -2
		var lastStyle uint16

		for _, pos := range positions {
			v := cells[pos]
			entry := styleFor(v)
			idx, ok := styleIndex[entry]
			if !ok {
				idx = uint16(len(delta.Styles))
				styleIndex[entry] = idx
				delta.Styles = append(delta.Styles, entry)
			}
			if span != nil && pos[0] == lastX+1 && idx == lastStyle {
				span.Text += string(v.Ch)
			} else {
				row.Spans = append(row.Spans, CellSpan{
					StartCol:   uint16(pos[0]),
					Text:       string(v.Ch),
					StyleIndex: idx,
				})
				span = &row.Spans[len(row.Spans)-1]
			}
			lastX = pos[0]
			lastStyle = idx
		}
		delta.Rows = append(delta.Rows, row)
	}
	return delta
}

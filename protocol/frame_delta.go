// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/frame_delta.go
// Summary: Compact binary encoding of per-frame cell updates for remote sinks.
// Usage: Encoded by the delta recorder, decoded by remote display clients.

package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// FrameDeltaFlags describes optional encoding tweaks.
type FrameDeltaFlags uint8

const (
	FrameDeltaNone FrameDeltaFlags = 0
)

// StyleEntry captures the palette styling shared by a span of cells. Bg is
// the palette index, or -1 for transparent. Blank marks cells whose animation
// state is currently invisible; their glyph renders as a space but the colors
// still apply.
type StyleEntry struct {
	Fg    uint8
	Bg    int8
	Blank bool
}

const styleBlankBit uint8 = 1 << 0

// CellSpan covers a contiguous run of cells on a row sharing one style.
type CellSpan struct {
	StartCol   uint16
	Text       string
	StyleIndex uint16
}

// RowDelta carries the updated spans of a single row.
type RowDelta struct {
	Row   uint16
	Spans []CellSpan
}

// FrameDelta is one layer's worth of cell updates for one frame.
type FrameDelta struct {
	LayerID  string
	Revision uint32
	Flags    FrameDeltaFlags
	Styles   []StyleEntry
	Rows     []RowDelta
}

var (
	ErrFrameTooLarge = errors.New("protocol: frame delta exceeds limits")
	errInvalidSpan   = errors.New("protocol: invalid span")
	errPayloadShort  = errors.New("protocol: payload truncated")
)

// EncodeFrameDelta serialises the delta into a compact binary representation:
// little-endian throughout, a length-prefixed layer id, a style table, then
// row/span records.
func EncodeFrameDelta(delta FrameDelta) ([]byte, error) {
	idBytes := []byte(delta.LayerID)
	if len(idBytes) > 0xFF {
		return nil, ErrFrameTooLarge
	}
	if len(delta.Styles) > 0xFFFF || len(delta.Rows) > 0xFFFF {
		return nil, ErrFrameTooLarge
	}

	buf := bytes.NewBuffer(make([]byte, 0, 64))
	buf.WriteByte(uint8(len(idBytes)))
	buf.Write(idBytes)
	if err := binary.Write(buf, binary.LittleEndian, delta.Revision); err != nil {
		return nil, err
	}
	buf.WriteByte(byte(delta.Flags))

	if err := binary.Write(buf, binary.LittleEndian, uint16(len(delta.Styles))); err != nil {
		return nil, err
	}
	for _, style := range delta.Styles {
		buf.WriteByte(style.Fg)
		buf.WriteByte(byte(style.Bg))
		var flags uint8
		if style.Blank {
			flags |= styleBlankBit
		}
		buf.WriteByte(flags)
	}

	if err := binary.Write(buf, binary.LittleEndian, uint16(len(delta.Rows))); err != nil {
		return nil, err
	}
	for _, row := range delta.Rows {
		if len(row.Spans) > 0xFFFF {
			return nil, ErrFrameTooLarge
		}
		if err := binary.Write(buf, binary.LittleEndian, row.Row); err != nil {
			return nil, err
		}
		if err := binary.Write(buf, binary.LittleEndian, uint16(len(row.Spans))); err != nil {
			return nil, err
		}
		for _, span := range row.Spans {
			textBytes := []byte(span.Text)
			if len(textBytes) > 0xFFFF {
				return nil, errInvalidSpan
			}
			if err := binary.Write(buf, binary.LittleEndian, span.StartCol); err != nil {
				return nil, err
			}
			if err := binary.Write(buf, binary.LittleEndian, uint16(len(textBytes))); err != nil {
				return nil, err
			}
			if err := binary.Write(buf, binary.LittleEndian, span.StyleIndex); err != nil {
				return nil, err
			}
			if len(textBytes) > 0 {
				buf.Write(textBytes)
			}
		}
	}

	return buf.Bytes(), nil
}

// DecodeFrameDelta reverses EncodeFrameDelta.
func DecodeFrameDelta(b []byte) (FrameDelta, error) {
	var delta FrameDelta
	if len(b) < 1 {
		return delta, errPayloadShort
	}
	idLen := int(b[0])
	b = b[1:]
	if len(b) < idLen+5 { // id + revision(4) + flags(1)
		return delta, errPayloadShort
	}
	delta.LayerID = string(b[:idLen])
	b = b[idLen:]
	delta.Revision = binary.LittleEndian.Uint32(b[:4])
	delta.Flags = FrameDeltaFlags(b[4])
	b = b[5:]

	if len(b) < 2 {
		return delta, errPayloadShort
	}
	styleCount := binary.LittleEndian.Uint16(b[:2])
	b = b[2:]
	delta.Styles = make([]StyleEntry, styleCount)
	for i := 0; i < int(styleCount); i++ {
		if len(b) < 3 {
			return delta, errPayloadShort
		}
		delta.Styles[i].Fg = b[0]
		delta.Styles[i].Bg = int8(b[1])
		delta.Styles[i].Blank = b[2]&styleBlankBit != 0
		b = b[3:]
	}

	if len(b) < 2 {
		return delta, errPayloadShort
	}
	rowCount := binary.LittleEndian.Uint16(b[:2])
	b = b[2:]
	delta.Rows = make([]RowDelta, rowCount)
	for i := 0; i < int(rowCount); i++ {
		if len(b) < 4 {
			return delta, errPayloadShort
		}
		row := binary.LittleEndian.Uint16(b[:2])
		spanCount := binary.LittleEndian.Uint16(b[2:4])
		b = b[4:]
		spans := make([]CellSpan, spanCount)
		for s := 0; s < int(spanCount); s++ {
			if len(b) < 6 {
				return delta, errPayloadShort
			}
			startCol := binary.LittleEndian.Uint16(b[:2])
			textLen := binary.LittleEndian.Uint16(b[2:4])
			styleIndex := binary.LittleEndian.Uint16(b[4:6])
			b = b[6:]
			if len(b) < int(textLen) {
				return delta, errPayloadShort
			}
			text := string(b[:textLen])
			b = b[textLen:]
			spans[s] = CellSpan{StartCol: startCol, Text: text, StyleIndex: styleIndex}
		}
		delta.Rows[i] = RowDelta{Row: row, Spans: spans}
	}

	return delta, nil
}

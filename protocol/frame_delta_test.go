package protocol

import "testing"

func TestFrameDeltaRoundTrip(t *testing.T) {
	delta := FrameDelta{
		LayerID:  "layer-2",
		Revision: 7,
		Flags:    FrameDeltaNone,
		Styles: []StyleEntry{
			{Fg: 2, Bg: 1},
			{Fg: 7, Bg: -1, Blank: true},
		},
		Rows: []RowDelta{
			{Row: 0, Spans: []CellSpan{{StartCol: 0, Text: "hello", StyleIndex: 0}}},
			{Row: 3, Spans: []CellSpan{
				{StartCol: 5, Text: "wo", StyleIndex: 1},
				{StartCol: 9, Text: "rld", StyleIndex: 0},
			}},
		},
	}

	payload, err := EncodeFrameDelta(delta)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeFrameDelta(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.LayerID != delta.LayerID || decoded.Revision != delta.Revision {
		t.Fatalf("header mismatch: %#v", decoded)
	}
	if len(decoded.Styles) != len(delta.Styles) {
		t.Fatalf("style table mismatch")
	}
	for i := range delta.Styles {
		if decoded.Styles[i] != delta.Styles[i] {
			t.Fatalf("style %d mismatch: %#v vs %#v", i, decoded.Styles[i], delta.Styles[i])
		}
	}
	for i := range delta.Rows {
		if decoded.Rows[i].Row != delta.Rows[i].Row || len(decoded.Rows[i].Spans) != len(delta.Rows[i].Spans) {
			t.Fatalf("row %d mismatch", i)
		}
		for j := range delta.Rows[i].Spans {
			if decoded.Rows[i].Spans[j] != delta.Rows[i].Spans[j] {
				t.Fatalf("span mismatch: %#v vs %#v", decoded.Rows[i].Spans[j], delta.Rows[i].Spans[j])
			}
		}
	}
}

func TestFrameDeltaTransparentBg(t *testing.T) {
	delta := FrameDelta{LayerID: "l", Styles: []StyleEntry{{Fg: 3, Bg: -1}}}
	payload, err := EncodeFrameDelta(delta)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeFrameDelta(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Styles[0].Bg != -1 {
		t.Fatalf("transparent bg lost: %d", decoded.Styles[0].Bg)
	}
}

func TestFrameDeltaInvalid(t *testing.T) {
	if _, err := DecodeFrameDelta(nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := DecodeFrameDelta([]byte{5, 'a', 'b'}); err == nil {
		t.Fatalf("expected error for truncated payload")
	}
}

func TestFrameDeltaLimits(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := EncodeFrameDelta(FrameDelta{LayerID: string(long)}); err == nil {
		t.Fatalf("expected error for oversized layer id")
	}
}

package tag

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/crateworks/seratotag/internal/types"
)

func appendEntry(payload []byte, name string, data []byte) []byte {
	payload = append(payload, name...)
	payload = append(payload, 0x00)
	payload = binary.BigEndian.AppendUint32(payload, uint32(len(data)))
	return append(payload, data...)
}

func cueEntryData(index uint8, position uint32, color types.Color, label string) []byte {
	data := []byte{0x00, index}
	data = binary.BigEndian.AppendUint32(data, position)
	data = append(data, 0x00, color.R, color.G, color.B, 0x00, 0x00)
	data = append(data, label...)
	return append(data, 0x00)
}

func loopEntryData(index uint8, start, end uint32, color types.Color, locked bool, label string) []byte {
	data := []byte{0x00, index}
	data = binary.BigEndian.AppendUint32(data, start)
	data = binary.BigEndian.AppendUint32(data, end)
	data = append(data, 0xFF, 0xFF, 0xFF, 0xFF)
	data = append(data, 0x00, color.R, color.G, color.B)
	if locked {
		data = append(data, 0x01)
	} else {
		data = append(data, 0x00)
	}
	data = append(data, label...)
	return append(data, 0x00)
}

// buildMarkers2Body wraps an inner payload the way Serato does: version
// header, then base64 of (version header + entries + terminator).
func buildMarkers2Body(entries ...[]byte) []byte {
	inner := []byte{0x01, 0x01}
	for _, e := range entries {
		inner = append(inner, e...)
	}
	inner = append(inner, 0x00)

	encoded := base64.StdEncoding.EncodeToString(inner)
	return append([]byte{0x01, 0x01}, encoded...)
}

func TestParseMarkers2(t *testing.T) {
	red := types.Color{R: 0xCC}
	body := buildMarkers2Body(
		appendEntry(nil, "COLOR", []byte{0x00, 0x00, 0x00, 0xCC}),
		appendEntry(nil, "CUE", cueEntryData(3, 1000, red, "Intro")),
		appendEntry(nil, "LOOP", loopEntryData(0, 500, 1500, red, true, "Break")),
		appendEntry(nil, "BPMLOCK", []byte{0x01}),
	)

	m, err := ParseMarkers2(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(m.Entries))
	}

	cues := m.Cues()
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	want := CueMarker{Index: 3, PositionMillis: 1000, Color: red, Label: "Intro"}
	if cues[0] != want {
		t.Errorf("cue = %+v, want %+v", cues[0], want)
	}

	loops := m.Loops()
	if len(loops) != 1 {
		t.Fatalf("expected 1 loop, got %d", len(loops))
	}
	wantLoop := LoopMarker{Index: 0, StartMillis: 500, EndMillis: 1500, Color: red, Locked: true, Label: "Break"}
	if loops[0] != wantLoop {
		t.Errorf("loop = %+v, want %+v", loops[0], wantLoop)
	}

	if color, ok := m.TrackColor(); !ok || color != (types.Color{B: 0xCC}) {
		t.Errorf("TrackColor = %v, %v; want #0000CC, true", color, ok)
	}

	if locked, ok := m.BPMLocked(); !ok || !locked {
		t.Errorf("BPMLocked = %v, %v; want true, true", locked, ok)
	}
}

func TestParseMarkers2_UnknownEntryPreserved(t *testing.T) {
	body := buildMarkers2Body(
		appendEntry(nil, "FLIP", []byte{0xDE, 0xAD, 0xBE, 0xEF}),
	)

	m, err := ParseMarkers2(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.Entries))
	}
	unknown, ok := m.Entries[0].(UnknownEntry)
	if !ok {
		t.Fatalf("expected UnknownEntry, got %T", m.Entries[0])
	}
	if unknown.Name != "FLIP" || len(unknown.Data) != 4 {
		t.Errorf("unexpected unknown entry: %+v", unknown)
	}
}

func TestParseMarkers2_EmptyRecord(t *testing.T) {
	m, err := ParseMarkers2(buildMarkers2Body())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Entries) != 0 {
		t.Errorf("expected no entries, got %v", m.Entries)
	}
	if _, ok := m.TrackColor(); ok {
		t.Error("TrackColor should be absent")
	}
	if _, ok := m.BPMLocked(); ok {
		t.Error("BPMLocked should be absent")
	}
}

func TestParseMarkers2_SeratoBase64Quirks(t *testing.T) {
	inner := append([]byte{0x01, 0x01}, appendEntry(nil, "BPMLOCK", []byte{0x01})...)
	inner = append(inner, 0x00)

	// Serato wraps lines, drops padding, and NUL-pads the buffer.
	encoded := []byte(base64.RawStdEncoding.EncodeToString(inner))
	wrapped := []byte{0x01, 0x01}
	for i, b := range encoded {
		if i > 0 && i%8 == 0 {
			wrapped = append(wrapped, '\n')
		}
		wrapped = append(wrapped, b)
	}
	wrapped = append(wrapped, 0x00, 0x00, 0x00)

	m, err := ParseMarkers2(wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locked, ok := m.BPMLocked(); !ok || !locked {
		t.Errorf("BPMLocked = %v, %v; want true, true", locked, ok)
	}
}

func TestParseMarkers2_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"empty", nil},
		{"version only", []byte{0x01, 0x01}},
		{"invalid base64", append([]byte{0x01, 0x01}, "!!!not base64!!!"...)},
		{"truncated entry length", buildTruncatedEntry()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMarkers2(tt.body); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func buildTruncatedEntry() []byte {
	// An entry that declares 100 bytes of data but provides none.
	inner := []byte{0x01, 0x01}
	inner = append(inner, "CUE"...)
	inner = append(inner, 0x00)
	inner = binary.BigEndian.AppendUint32(inner, 100)

	encoded := base64.StdEncoding.EncodeToString(inner)
	return append([]byte{0x01, 0x01}, encoded...)
}

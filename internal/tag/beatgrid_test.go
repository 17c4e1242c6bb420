package tag

import (
	"encoding/binary"
	"math"
	"testing"
)

func beatgridBody(markers ...[2]float32) []byte {
	// markers: all but the last are (position, beats-as-float); the last
	// is (position, bpm). Non-terminal beat counts are written as u32.
	body := []byte{0x01, 0x00}
	body = binary.BigEndian.AppendUint32(body, uint32(len(markers)))
	for i, m := range markers {
		body = binary.BigEndian.AppendUint32(body, math.Float32bits(m[0]))
		if i < len(markers)-1 {
			body = binary.BigEndian.AppendUint32(body, uint32(m[1]))
		} else {
			body = binary.BigEndian.AppendUint32(body, math.Float32bits(m[1]))
		}
	}
	return append(body, 0x00) // footer
}

func TestParseBeatGrid(t *testing.T) {
	body := beatgridBody(
		[2]float32{0.5, 64},
		[2]float32{120.25, 32},
		[2]float32{180.0, 174.0},
	)

	grid, err := ParseBeatGrid(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(grid.NonTerminal) != 2 {
		t.Fatalf("expected 2 non-terminal markers, got %d", len(grid.NonTerminal))
	}
	if grid.NonTerminal[0].Position != 0.5 || grid.NonTerminal[0].BeatsTillNext != 64 {
		t.Errorf("unexpected first marker: %+v", grid.NonTerminal[0])
	}
	if grid.NonTerminal[1].Position != 120.25 || grid.NonTerminal[1].BeatsTillNext != 32 {
		t.Errorf("unexpected second marker: %+v", grid.NonTerminal[1])
	}
	if grid.Terminal.Position != 180.0 || grid.Terminal.BPM != 174.0 {
		t.Errorf("unexpected terminal marker: %+v", grid.Terminal)
	}
}

func TestParseBeatGrid_TerminalOnly(t *testing.T) {
	grid, err := ParseBeatGrid(beatgridBody([2]float32{0.1, 128.5}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid.NonTerminal) != 0 {
		t.Errorf("expected no non-terminal markers, got %v", grid.NonTerminal)
	}
	if grid.Terminal.BPM != 128.5 {
		t.Errorf("Terminal.BPM = %v, want 128.5", grid.Terminal.BPM)
	}
}

func TestParseBeatGrid_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"empty", nil},
		{"no count", []byte{0x01, 0x00}},
		{"zero markers", []byte{0x01, 0x00, 0, 0, 0, 0}},
		{"truncated markers", []byte{0x01, 0x00, 0, 0, 0, 2, 0x3F, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBeatGrid(tt.body); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

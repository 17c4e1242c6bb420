package tag

import (
	"encoding/binary"
	"testing"

	"github.com/crateworks/seratotag/internal/types"
)

// buildMarkerEntry encodes one 22-byte legacy slot.
func buildMarkerEntry(typ EntryType, start, end *uint32, color uint32, locked bool) []byte {
	b := make([]byte, markerEntrySize)

	if start != nil {
		enc := serato32Encode(*start)
		copy(b[1:5], enc[:])
	} else {
		b[0] = 0x7F
		copy(b[1:5], serato32Absent[:])
	}

	if end != nil {
		enc := serato32Encode(*end)
		copy(b[6:10], enc[:])
	} else {
		b[5] = 0x7F
		copy(b[6:10], serato32Absent[:])
	}

	copy(b[10:16], []byte{0x00, 0x7F, 0x7F, 0x7F, 0x7F, 0x7F})

	colorEnc := serato32Encode(color)
	copy(b[16:20], colorEnc[:])

	b[20] = byte(typ)
	if locked {
		b[21] = 1
	}

	return b
}

func buildMarkersBody(entries [][]byte, trackColor uint32) []byte {
	body := []byte{0x02, 0x05}
	body = binary.BigEndian.AppendUint32(body, uint32(len(entries)))
	for _, e := range entries {
		body = append(body, e...)
	}
	tc := serato32Encode(trackColor)
	return append(body, tc[:]...)
}

func u32p(v uint32) *uint32 { return &v }

func TestParseMarkers(t *testing.T) {
	entries := make([][]byte, 14)
	entries[0] = buildMarkerEntry(EntryTypeCue, u32p(1200), nil, 0xCC0000, false)
	entries[1] = buildMarkerEntry(EntryTypeInvalid, nil, nil, 0, false)
	for i := 2; i < 5; i++ {
		entries[i] = buildMarkerEntry(EntryTypeInvalid, nil, nil, 0, false)
	}
	entries[5] = buildMarkerEntry(EntryTypeLoop, u32p(1000), u32p(2000), 0x00CC00, true)
	for i := 6; i < 14; i++ {
		entries[i] = buildMarkerEntry(EntryTypeInvalid, nil, nil, 0, false)
	}

	m, err := ParseMarkers(buildMarkersBody(entries, 0x0000CC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Version != (Version{Major: 2, Minor: 5}) {
		t.Errorf("Version = %v, want 2.5", m.Version)
	}
	if len(m.Entries) != 14 {
		t.Fatalf("expected 14 entries, got %d", len(m.Entries))
	}

	cue := m.Entries[0]
	if cue.Type != EntryTypeCue {
		t.Errorf("entry 0 type = %v, want CUE", cue.Type)
	}
	if cue.StartMillis == nil || *cue.StartMillis != 1200 {
		t.Errorf("entry 0 start = %v, want 1200", cue.StartMillis)
	}
	if cue.EndMillis != nil {
		t.Errorf("entry 0 end = %v, want nil", cue.EndMillis)
	}
	if cue.Color != (types.Color{R: 0xCC}) {
		t.Errorf("entry 0 color = %v, want #CC0000", cue.Color)
	}

	loop := m.Entries[5]
	if loop.Type != EntryTypeLoop || !loop.Locked {
		t.Errorf("entry 5 = %+v, want locked LOOP", loop)
	}
	if loop.StartMillis == nil || *loop.StartMillis != 1000 || loop.EndMillis == nil || *loop.EndMillis != 2000 {
		t.Errorf("entry 5 positions = %v..%v, want 1000..2000", loop.StartMillis, loop.EndMillis)
	}

	if m.TrackColor != (types.Color{B: 0xCC}) {
		t.Errorf("TrackColor = %v, want #0000CC", m.TrackColor)
	}
}

func TestMarkers_CueAndLoopViews(t *testing.T) {
	entries := make([][]byte, 14)
	for i := range entries {
		entries[i] = buildMarkerEntry(EntryTypeInvalid, nil, nil, 0, false)
	}
	entries[3] = buildMarkerEntry(EntryTypeCue, u32p(500), nil, 0, false)
	entries[7] = buildMarkerEntry(EntryTypeLoop, u32p(100), u32p(200), 0, false)

	m, err := ParseMarkers(buildMarkersBody(entries, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cueCount := 0
	for index, entry := range m.CueEntries() {
		cueCount++
		if index > 4 {
			t.Errorf("cue view yielded index %d beyond the cue slots", index)
		}
		if index == 3 && entry.Type != EntryTypeCue {
			t.Errorf("cue 3 type = %v, want CUE", entry.Type)
		}
	}
	if cueCount != 5 {
		t.Errorf("cue view yielded %d entries, want 5", cueCount)
	}

	loopCount := 0
	for index, entry := range m.LoopEntries() {
		loopCount++
		if index == 2 && entry.Type != EntryTypeLoop {
			t.Errorf("loop 2 type = %v, want LOOP", entry.Type)
		}
	}
	if loopCount != 9 {
		t.Errorf("loop view yielded %d entries, want 9", loopCount)
	}
}

func TestParseMarkers_Truncated(t *testing.T) {
	entries := [][]byte{buildMarkerEntry(EntryTypeCue, u32p(1), nil, 0, false)}
	body := buildMarkersBody(entries, 0)

	// Claim more entries than the body holds.
	binary.BigEndian.PutUint32(body[2:6], 5)

	if _, err := ParseMarkers(body); err == nil {
		t.Error("expected error for truncated body, got nil")
	}
}

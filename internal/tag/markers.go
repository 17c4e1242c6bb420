package tag

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/crateworks/seratotag/internal/types"
)

// EntryType tags a legacy marker slot.
type EntryType uint8

const (
	// EntryTypeInvalid marks an unused slot. For cue slots this is an
	// explicit "this cue does not exist" signal that overrides Markers2.
	EntryTypeInvalid EntryType = 0
	// EntryTypeCue marks a cue point slot.
	EntryTypeCue EntryType = 1
	// EntryTypeLoop marks a saved loop slot.
	EntryTypeLoop EntryType = 3
)

// String returns the entry type name.
func (t EntryType) String() string {
	switch t {
	case EntryTypeInvalid:
		return "INVALID"
	case EntryTypeCue:
		return "CUE"
	case EntryTypeLoop:
		return "LOOP"
	default:
		return fmt.Sprintf("EntryType(%d)", uint8(t))
	}
}

// MarkerEntry is one slot of the legacy "Serato Markers_" tag.
//
// Positions are nil when the slot's presence flag says the value is
// absent. Locked is only meaningful for loop slots.
type MarkerEntry struct {
	Type        EntryType
	StartMillis *uint32
	EndMillis   *uint32
	Color       types.Color
	Locked      bool
}

// Markers is the decoded legacy "Serato Markers_" tag.
//
// The tag is a fixed table: the first five slots are cue points, the
// following nine are saved loops. Serato updates this tag most eagerly,
// which is why it wins over Markers2 during reconciliation.
type Markers struct {
	Version Version
	Entries []MarkerEntry

	// TrackColor is the overall track color from the tag footer. Always
	// present when the tag itself is.
	TrackColor types.Color
}

// cueSlots is the number of leading entries that represent cue points;
// the remaining slots represent loops.
const cueSlots = 5

const markerEntrySize = 22

// ParseMarkers decodes a legacy "Serato Markers_" tag body.
func ParseMarkers(data []byte) (*Markers, error) {
	version, rest, err := readVersion(NameMarkers, data)
	if err != nil {
		return nil, err
	}

	if len(rest) < 4 {
		return nil, fmt.Errorf("%s: body too short for entry count", NameMarkers)
	}
	count := binary.BigEndian.Uint32(rest)
	rest = rest[4:]

	need := int(count)*markerEntrySize + 4 // entries plus track color footer
	if len(rest) < need {
		return nil, fmt.Errorf("%s: %d entries need %d bytes, have %d", NameMarkers, count, need, len(rest))
	}

	m := &Markers{Version: version}
	for i := uint32(0); i < count; i++ {
		m.Entries = append(m.Entries, parseMarkerEntry(rest[:markerEntrySize]))
		rest = rest[markerEntrySize:]
	}
	m.TrackColor = serato32Color(rest[:4])

	return m, nil
}

// parseMarkerEntry decodes one 22-byte slot:
//
//	[0]     start presence flag (0x00 present, 0x7F absent)
//	[1:5]   start position, serato32 milliseconds
//	[5]     end presence flag
//	[6:10]  end position, serato32 milliseconds
//	[10:16] unknown, written as 00 7F 7F 7F 7F 7F
//	[16:20] color, serato32 RGB
//	[20]    entry type
//	[21]    locked flag
func parseMarkerEntry(b []byte) MarkerEntry {
	e := MarkerEntry{
		Color:  serato32Color(b[16:20]),
		Type:   EntryType(b[20]),
		Locked: b[21] != 0,
	}

	if b[0] != 0x7F {
		start := serato32Decode(b[1:5])
		e.StartMillis = &start
	}
	if b[5] != 0x7F {
		end := serato32Decode(b[6:10])
		e.EndMillis = &end
	}

	return e
}

// CueEntries iterates the cue slots in index order, yielding the slot
// index and entry. Indices match the cue indices used by Markers2.
func (m *Markers) CueEntries() iter.Seq2[uint8, MarkerEntry] {
	return func(yield func(uint8, MarkerEntry) bool) {
		for i, e := range m.Entries {
			if i >= cueSlots {
				return
			}
			if !yield(uint8(i), e) {
				return
			}
		}
	}
}

// LoopEntries iterates the loop slots in index order, yielding the loop
// index (rebased to zero) and entry.
func (m *Markers) LoopEntries() iter.Seq2[uint8, MarkerEntry] {
	return func(yield func(uint8, MarkerEntry) bool) {
		for i := cueSlots; i < len(m.Entries); i++ {
			if !yield(uint8(i-cueSlots), m.Entries[i]) {
				return
			}
		}
	}
}

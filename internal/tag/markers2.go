package tag

import (
	"encoding/binary"
	"fmt"

	"github.com/crateworks/seratotag/internal/types"
)

// Entry is one decoded entry of the "Serato Markers2" tag.
type Entry interface {
	// EntryName returns the on-disk entry name ("CUE", "LOOP", ...).
	EntryName() string
}

// CueMarker is a cue point: an indexed, colored, optionally labeled
// timestamp bookmark. It is both a Markers2 entry and the element type
// of the reconciled cue list.
type CueMarker struct {
	Index          uint8
	PositionMillis uint32
	Color          types.Color
	Label          string
}

// EntryName implements Entry.
func (CueMarker) EntryName() string { return "CUE" }

// LoopMarker is a saved loop: an indexed, colored, optionally labeled
// time range with a lock flag. It is both a Markers2 entry and the
// element type of the reconciled loop list.
type LoopMarker struct {
	Index       uint8
	StartMillis uint32
	EndMillis   uint32
	Color       types.Color
	Locked      bool
	Label       string
}

// EntryName implements Entry.
func (LoopMarker) EntryName() string { return "LOOP" }

// TrackColorEntry carries the overall track color.
type TrackColorEntry struct {
	Color types.Color
}

// EntryName implements Entry.
func (TrackColorEntry) EntryName() string { return "COLOR" }

// BPMLockEntry carries the beat grid lock flag.
type BPMLockEntry struct {
	Locked bool
}

// EntryName implements Entry.
func (BPMLockEntry) EntryName() string { return "BPMLOCK" }

// UnknownEntry preserves entries this library does not interpret, such
// as FLIP performance recordings.
type UnknownEntry struct {
	Name string
	Data []byte
}

// EntryName implements Entry.
func (e UnknownEntry) EntryName() string { return e.Name }

// Markers2 is the decoded "Serato Markers2" tag, the richer of the two
// marker tags. Entries keep their on-disk order.
type Markers2 struct {
	Version Version
	Entries []Entry
}

// ParseMarkers2 decodes a "Serato Markers2" tag body.
//
// The body is the version header followed by a base64 payload; the
// decoded payload is a second version header followed by a sequence of
// [NUL-terminated name, big-endian u32 length, data] entries, terminated
// by a NUL where the next name would start.
func ParseMarkers2(data []byte) (*Markers2, error) {
	version, rest, err := readVersion(NameMarkers2, data)
	if err != nil {
		return nil, err
	}

	payload, err := DecodeBase64(rest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NameMarkers2, err)
	}

	_, payload, err = readVersion(NameMarkers2, payload)
	if err != nil {
		return nil, err
	}

	m := &Markers2{Version: version}
	for len(payload) > 0 && payload[0] != 0x00 {
		name, after, err := cstring(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: entry name: %w", NameMarkers2, err)
		}
		if len(after) < 4 {
			return nil, fmt.Errorf("%s: entry %q: truncated length", NameMarkers2, name)
		}
		length := binary.BigEndian.Uint32(after)
		after = after[4:]
		if uint32(len(after)) < length {
			return nil, fmt.Errorf("%s: entry %q: %d bytes declared, %d remain", NameMarkers2, name, length, len(after))
		}

		entry, err := parseMarkers2Entry(name, after[:length])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", NameMarkers2, err)
		}
		m.Entries = append(m.Entries, entry)

		payload = after[length:]
	}

	return m, nil
}

func parseMarkers2Entry(name string, data []byte) (Entry, error) {
	switch name {
	case "CUE":
		return parseCueEntry(data)
	case "LOOP":
		return parseLoopEntry(data)
	case "COLOR":
		if len(data) < 4 {
			return nil, fmt.Errorf("entry COLOR: need 4 bytes, have %d", len(data))
		}
		return TrackColorEntry{Color: types.Color{R: data[1], G: data[2], B: data[3]}}, nil
	case "BPMLOCK":
		if len(data) < 1 {
			return nil, fmt.Errorf("entry BPMLOCK: empty")
		}
		return BPMLockEntry{Locked: data[0] != 0}, nil
	default:
		return UnknownEntry{Name: name, Data: data}, nil
	}
}

// parseCueEntry decodes a CUE payload:
//
//	[0]     unknown, 0x00
//	[1]     index
//	[2:6]   position, big-endian milliseconds
//	[6]     unknown, 0x00
//	[7:10]  color RGB
//	[10:12] unknown
//	[12:]   NUL-terminated label
func parseCueEntry(data []byte) (Entry, error) {
	if len(data) < 13 {
		return nil, fmt.Errorf("entry CUE: need at least 13 bytes, have %d", len(data))
	}

	label, _, err := cstring(data[12:])
	if err != nil {
		return nil, fmt.Errorf("entry CUE: label: %w", err)
	}

	return CueMarker{
		Index:          data[1],
		PositionMillis: binary.BigEndian.Uint32(data[2:6]),
		Color:          types.Color{R: data[7], G: data[8], B: data[9]},
		Label:          label,
	}, nil
}

// parseLoopEntry decodes a LOOP payload:
//
//	[0]     unknown, 0x00
//	[1]     index
//	[2:6]   start position, big-endian milliseconds
//	[6:10]  end position, big-endian milliseconds
//	[10:14] unknown, 0xFF FF FF FF
//	[14:18] color, 0x00 then RGB
//	[18]    locked flag
//	[19:]   NUL-terminated label
func parseLoopEntry(data []byte) (Entry, error) {
	if len(data) < 20 {
		return nil, fmt.Errorf("entry LOOP: need at least 20 bytes, have %d", len(data))
	}

	label, _, err := cstring(data[19:])
	if err != nil {
		return nil, fmt.Errorf("entry LOOP: label: %w", err)
	}

	return LoopMarker{
		Index:       data[1],
		StartMillis: binary.BigEndian.Uint32(data[2:6]),
		EndMillis:   binary.BigEndian.Uint32(data[6:10]),
		Color:       types.Color{R: data[15], G: data[16], B: data[17]},
		Locked:      data[18] != 0,
		Label:       label,
	}, nil
}

// Cues returns the cue entries in on-disk order.
func (m *Markers2) Cues() []CueMarker {
	var cues []CueMarker
	for _, e := range m.Entries {
		if cue, ok := e.(CueMarker); ok {
			cues = append(cues, cue)
		}
	}
	return cues
}

// Loops returns the loop entries in on-disk order.
func (m *Markers2) Loops() []LoopMarker {
	var loops []LoopMarker
	for _, e := range m.Entries {
		if l, ok := e.(LoopMarker); ok {
			loops = append(loops, l)
		}
	}
	return loops
}

// TrackColor returns the overall track color, if the tag carries one.
func (m *Markers2) TrackColor() (types.Color, bool) {
	for _, e := range m.Entries {
		if c, ok := e.(TrackColorEntry); ok {
			return c.Color, true
		}
	}
	return types.Color{}, false
}

// BPMLocked returns the beat grid lock flag, if the tag carries one.
func (m *Markers2) BPMLocked() (bool, bool) {
	for _, e := range m.Entries {
		if b, ok := e.(BPMLockEntry); ok {
			return b.Locked, true
		}
	}
	return false, false
}

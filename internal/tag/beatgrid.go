package tag

import (
	"encoding/binary"
	"fmt"
	"math"
)

// GridMarker is one non-terminal beat grid marker: a beat position and
// the number of beats until the next marker.
type GridMarker struct {
	// Position of the beat in seconds from the start of the track.
	Position float32

	// BeatsTillNext is the beat count to the next grid marker.
	BeatsTillNext uint32
}

// TerminalGridMarker is the final beat grid marker. Instead of a beat
// count it carries the BPM that holds from its position to the end of
// the track.
type TerminalGridMarker struct {
	// Position of the beat in seconds from the start of the track.
	Position float32

	// BPM from this marker to the end of the track.
	BPM float32
}

// BeatGrid is the decoded "Serato BeatGrid" tag: zero or more
// non-terminal markers followed by exactly one terminal marker.
type BeatGrid struct {
	Version     Version
	NonTerminal []GridMarker
	Terminal    TerminalGridMarker

	// Footer is a trailing byte of unknown meaning that Serato writes
	// after the terminal marker. Preserved for fidelity.
	Footer byte
}

// ParseBeatGrid decodes a "Serato BeatGrid" tag body.
func ParseBeatGrid(data []byte) (*BeatGrid, error) {
	version, rest, err := readVersion(NameBeatGrid, data)
	if err != nil {
		return nil, err
	}

	if len(rest) < 4 {
		return nil, fmt.Errorf("%s: body too short for marker count", NameBeatGrid)
	}
	count := binary.BigEndian.Uint32(rest)
	rest = rest[4:]

	if count == 0 {
		return nil, fmt.Errorf("%s: marker count is zero, terminal marker required", NameBeatGrid)
	}

	// Every marker is 8 bytes, non-terminal and terminal alike.
	need := int(count) * 8
	if len(rest) < need {
		return nil, fmt.Errorf("%s: %d markers need %d bytes, have %d", NameBeatGrid, count, need, len(rest))
	}

	grid := &BeatGrid{Version: version}
	for i := uint32(0); i < count-1; i++ {
		grid.NonTerminal = append(grid.NonTerminal, GridMarker{
			Position:      math.Float32frombits(binary.BigEndian.Uint32(rest)),
			BeatsTillNext: binary.BigEndian.Uint32(rest[4:]),
		})
		rest = rest[8:]
	}

	grid.Terminal = TerminalGridMarker{
		Position: math.Float32frombits(binary.BigEndian.Uint32(rest)),
		BPM:      math.Float32frombits(binary.BigEndian.Uint32(rest[4:])),
	}
	rest = rest[8:]

	if len(rest) > 0 {
		grid.Footer = rest[0]
	}

	return grid, nil
}

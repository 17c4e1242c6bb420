// Package tag decodes the individual Serato tag bodies.
//
// Each tag kind has its own decoder producing an immutable record. The
// decoders operate on already-extracted tag bodies; locating the bodies
// inside the host container is the job of the format packages.
package tag

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// Canonical Serato tag names. ID3v2 GEOB frames carry these verbatim in
// the frame description; the FLAC and MP4 extractors normalize their
// container-specific spellings to these.
const (
	NameAnalysis = "Serato Analysis"
	NameAutotags = "Serato Autotags"
	NameBeatGrid = "Serato BeatGrid"
	NameMarkers  = "Serato Markers_"
	NameMarkers2 = "Serato Markers2"
	NameOverview = "Serato Overview"
)

// Version is the two-byte version header most Serato tags start with.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version in "major.minor" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// readVersion pulls the leading version bytes off a tag body.
func readVersion(tag string, data []byte) (Version, []byte, error) {
	if len(data) < 2 {
		return Version{}, nil, fmt.Errorf("%s: body too short for version header (%d bytes)", tag, len(data))
	}
	return Version{Major: data[0], Minor: data[1]}, data[2:], nil
}

// DecodeBase64 decodes Serato's base64 flavor.
//
// Serato wraps base64 text with newlines, pads the buffer with trailing
// NUL bytes, and does not reliably emit '=' padding. The final group may
// even be a single dangling character, which carries no data and is
// dropped.
func DecodeBase64(data []byte) ([]byte, error) {
	clean := make([]byte, 0, len(data))
	for _, b := range data {
		if b == '\n' || b == '\r' {
			continue
		}
		clean = append(clean, b)
	}
	clean = bytes.TrimRight(clean, "\x00")
	clean = bytes.TrimRight(clean, "=")
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}

	out, err := base64.RawStdEncoding.DecodeString(string(clean))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return out, nil
}

// ParseEnvelope unwraps the base64 envelope FLAC and MP4 use to embed
// tag bodies: base64("application/octet-stream\x00\x00<name>\x00<body>").
// Returns the embedded tag name and the raw body.
func ParseEnvelope(data []byte) (string, []byte, error) {
	decoded, err := DecodeBase64(data)
	if err != nil {
		return "", nil, err
	}

	sep := bytes.Index(decoded, []byte{0x00, 0x00})
	if sep < 0 {
		return "", nil, fmt.Errorf("envelope: missing mime type terminator")
	}

	rest := decoded[sep+2:]
	nameEnd := bytes.IndexByte(rest, 0x00)
	if nameEnd < 0 {
		return "", nil, fmt.Errorf("envelope: missing tag name terminator")
	}

	return string(rest[:nameEnd]), rest[nameEnd+1:], nil
}

// cstring splits data at the first NUL byte, returning the string before
// it and the remainder after it.
func cstring(data []byte) (string, []byte, error) {
	end := bytes.IndexByte(data, 0x00)
	if end < 0 {
		return "", nil, fmt.Errorf("unterminated string")
	}
	return string(data[:end]), data[end+1:], nil
}

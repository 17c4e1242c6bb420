// Package id3 extracts Serato tags from ID3v2 GEOB frames.
//
// Serato stores each tag as a General Encapsulated Object frame whose
// description is the canonical tag name ("Serato Markers2", ...). Only
// ID3v2.3 and ID3v2.4 are supported, matching what Serato writes.
package id3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	binutil "github.com/crateworks/seratotag/internal/binary"
	"github.com/crateworks/seratotag/internal/registry"
	"github.com/crateworks/seratotag/internal/types"
)

func init() {
	registry.Register(types.FormatMP3, extractor{})
}

type extractor struct{}

// Extract walks the ID3v2 tag at the start of the file and returns the
// bodies of all Serato GEOB frames.
func (extractor) Extract(r io.ReaderAt, size int64, path string) ([]types.RawTag, []types.Warning, error) {
	sr := binutil.NewSafeReader(r, size, path)

	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "ID3v2 header"); err != nil {
		return nil, nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read ID3v2 header",
		}
	}

	if string(header[0:3]) != "ID3" {
		// MP3 without an ID3v2 tag carries no Serato metadata.
		return nil, []types.Warning{{
			Stage:   "extract",
			Message: "no ID3v2 tag present",
		}}, nil
	}

	version := header[3]
	flags := header[5]
	tagSize := decodeSynchsafe(header[6:10])

	if version != 3 && version != 4 {
		return nil, nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", version),
		}
	}

	// Skip the extended header if present.
	offset := int64(10)
	if flags&0x40 != 0 {
		extBuf := make([]byte, 4)
		if err := sr.ReadAt(extBuf, offset, "extended header size"); err == nil {
			if version == 4 {
				offset += int64(decodeSynchsafe(extBuf))
			} else {
				offset += int64(binary.BigEndian.Uint32(extBuf)) + 4
			}
		}
	}

	var tags []types.RawTag
	var warnings []types.Warning

	tagEnd := int64(10 + tagSize)
	for offset < tagEnd {
		frameHeader := make([]byte, 10)
		if err := sr.ReadAt(frameHeader, offset, "frame header"); err != nil {
			break
		}

		// Padding marks the end of frames.
		if frameHeader[0] == 0 {
			break
		}

		frameID := string(frameHeader[0:4])
		var frameSize uint32
		if version == 4 {
			frameSize = decodeSynchsafe(frameHeader[4:8])
		} else {
			frameSize = binary.BigEndian.Uint32(frameHeader[4:8])
		}

		if frameID == "GEOB" {
			frameData := make([]byte, frameSize)
			if err := sr.ReadAt(frameData, offset+10, "GEOB frame data"); err != nil {
				warnings = append(warnings, types.Warning{
					Stage:   "extract",
					Message: fmt.Sprintf("failed to read GEOB frame: %v", err),
					Offset:  offset,
				})
				offset += 10 + int64(frameSize)
				continue
			}

			name, body, err := parseGEOB(frameData)
			if err != nil {
				warnings = append(warnings, types.Warning{
					Stage:   "extract",
					Message: fmt.Sprintf("malformed GEOB frame: %v", err),
					Offset:  offset,
				})
			} else if strings.HasPrefix(name, "Serato ") {
				tags = append(tags, types.RawTag{
					Name:   name,
					Data:   body,
					Offset: offset,
				})
			}
		}

		offset += 10 + int64(frameSize)
	}

	return tags, warnings, nil
}

// parseGEOB splits a GEOB frame body into its object description and the
// encapsulated object data:
//
//	[encoding byte][mime type, Latin-1 cstring][filename][description][object]
//
// The filename and description strings use the frame's text encoding.
func parseGEOB(data []byte) (string, []byte, error) {
	if len(data) < 2 {
		return "", nil, fmt.Errorf("frame too short (%d bytes)", len(data))
	}

	enc := data[0]
	rest := data[1:]

	// MIME type is always Latin-1.
	mimeEnd := bytes.IndexByte(rest, 0x00)
	if mimeEnd < 0 {
		return "", nil, fmt.Errorf("unterminated mime type")
	}
	rest = rest[mimeEnd+1:]

	// Filename, usually empty for Serato tags.
	fnEnd := findTerminator(rest, enc)
	if fnEnd < 0 {
		return "", nil, fmt.Errorf("unterminated filename")
	}
	rest = rest[fnEnd+terminatorSize(enc):]

	descEnd := findTerminator(rest, enc)
	if descEnd < 0 {
		return "", nil, fmt.Errorf("unterminated description")
	}

	desc, err := decodeText(rest[:descEnd], enc)
	if err != nil {
		return "", nil, fmt.Errorf("description: %w", err)
	}

	return desc, rest[descEnd+terminatorSize(enc):], nil
}

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// decodeText decodes a string according to the ID3v2 text encoding byte.
func decodeText(data []byte, enc byte) (string, error) {
	switch enc {
	case 0: // ISO-8859-1
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil

	case 1: // UTF-16 with BOM
		out, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil

	case 2: // UTF-16BE without BOM (ID3v2.4)
		out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil

	case 3: // UTF-8 (ID3v2.4)
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown text encoding %d", enc)
	}
}

// findTerminator finds the string terminator for the given encoding.
func findTerminator(data []byte, enc byte) int {
	switch enc {
	case 1, 2: // UTF-16: double-byte terminator
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	default:
		return bytes.IndexByte(data, 0x00)
	}
}

// terminatorSize returns the terminator width for the given encoding.
func terminatorSize(enc byte) int {
	if enc == 1 || enc == 2 {
		return 2
	}
	return 1
}

package types

import (
	"io"

	"github.com/crateworks/seratotag/internal/binary"
)

// Format represents the detected host audio container format.
//
// Serato stores its tags differently per container: ID3v2 GEOB frames in
// MP3 and AIFF, base64-encoded Vorbis comments in FLAC, and freeform
// ilst atoms in MP4.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatMP3 represents MP3 audio files (ID3v2 GEOB frames).
	FormatMP3
	// FormatFLAC represents FLAC audio files (Vorbis comments).
	FormatFLAC
	// FormatMP4 represents M4A/MP4 audio files (freeform ilst atoms).
	FormatMP4
)

// String returns the human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatFLAC:
		return "FLAC"
	case FormatMP4:
		return "MP4"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMP3:
		return []string{".mp3"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatMP4:
		return []string{".m4a", ".mp4"}
	default:
		return nil
	}
}

// RawTag is one extracted, still-encoded Serato tag body.
//
// Name is the canonical tag name ("Serato Markers2", ...) regardless of
// how the host container spelled it; Data is the tag body with any
// container-level envelope already removed.
type RawTag struct {
	Name   string
	Data   []byte
	Offset int64
}

// DetectFormat determines the audio file format by examining magic bytes.
//
// Supported formats: MP3, FLAC, M4A/MP4. Detection is based on file
// signatures at the beginning of the file and does not validate the
// entire file structure.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 8 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 8)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	// FLAC stream marker
	if string(magic[:4]) == "fLaC" {
		return FormatFLAC, nil
	}

	// ID3v2 tag (MP3)
	if string(magic[:3]) == "ID3" {
		return FormatMP3, nil
	}

	// MP3 frame sync, for files without an ID3v2 header. These cannot
	// carry Serato tags but are still recognized as MP3.
	if magic[0] == 0xFF && (magic[1]&0xE0) == 0xE0 {
		return FormatMP3, nil
	}

	// MP4 ftyp atom at offset 4
	if string(magic[4:8]) == "ftyp" {
		return FormatMP4, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file format",
	}
}

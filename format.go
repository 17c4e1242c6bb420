package seratotag

import (
	"io"

	"github.com/crateworks/seratotag/internal/types"
)

// Format is the detected host audio container format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatMP3     = types.FormatMP3
	FormatFLAC    = types.FormatFLAC
	FormatMP4     = types.FormatMP4
)

// DetectFormat determines the audio file format by examining magic bytes.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}

package types

import (
	"bytes"
	"errors"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"flac", append([]byte("fLaC"), make([]byte, 8)...), FormatFLAC},
		{"mp3 with id3", append([]byte("ID3"), make([]byte, 8)...), FormatMP3},
		{"mp3 bare frame sync", append([]byte{0xFF, 0xFB}, make([]byte, 8)...), FormatMP3},
		{"mp4", append([]byte{0x00, 0x00, 0x00, 0x20}, []byte("ftypM4A ")...), FormatMP4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(bytes.NewReader(tt.data), int64(len(tt.data)), "test")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFormat_Unknown(t *testing.T) {
	data := []byte("RIFFxxxxWAVE")
	_, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "test.wav")

	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestDetectFormat_TooSmall(t *testing.T) {
	data := []byte("ID3")
	if _, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "tiny"); err == nil {
		t.Error("expected error for tiny file, got nil")
	}
}

func TestFormatString(t *testing.T) {
	if FormatMP3.String() != "MP3" || FormatUnknown.String() != "Unknown" {
		t.Error("unexpected format names")
	}
}

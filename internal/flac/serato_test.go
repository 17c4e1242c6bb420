package flac

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"testing"
)

func envelope(name string, body []byte) string {
	payload := []byte("application/octet-stream\x00\x00")
	payload = append(payload, name...)
	payload = append(payload, 0x00)
	payload = append(payload, body...)
	return base64.StdEncoding.EncodeToString(payload)
}

func buildVorbisBlock(comments ...string) []byte {
	vendor := "reference libFLAC"
	block := binary.LittleEndian.AppendUint32(nil, uint32(len(vendor)))
	block = append(block, vendor...)
	block = binary.LittleEndian.AppendUint32(block, uint32(len(comments)))
	for _, c := range comments {
		block = binary.LittleEndian.AppendUint32(block, uint32(len(c)))
		block = append(block, c...)
	}
	return block
}

func buildFLAC(vorbisBlock []byte) []byte {
	data := []byte("fLaC")

	// A STREAMINFO block the extractor should skip over.
	streamInfo := make([]byte, 34)
	data = binary.BigEndian.AppendUint32(data, uint32(0)<<24|uint32(len(streamInfo)))
	data = append(data, streamInfo...)

	// VORBIS_COMMENT block, marked last.
	data = binary.BigEndian.AppendUint32(data, 1<<31|uint32(4)<<24|uint32(len(vorbisBlock)))
	return append(data, vorbisBlock...)
}

func TestExtract_SeratoComments(t *testing.T) {
	markers2Body := []byte{0x01, 0x01, 0xAA, 0xBB}
	autotagsBody := append([]byte{0x01, 0x01}, "0.000\x000.000\x00"...)

	data := buildFLAC(buildVorbisBlock(
		"TITLE=Some Track",
		"SERATO_MARKERS_V2="+envelope("Serato Markers2", markers2Body),
		"serato_autogain="+envelope("Serato Autotags", autotagsBody),
	))

	tags, warnings, err := extractor{}.Extract(bytes.NewReader(data), int64(len(data)), "test.flac")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d: %v", len(tags), tags)
	}
	if tags[0].Name != "Serato Markers2" || !bytes.Equal(tags[0].Data, markers2Body) {
		t.Errorf("unexpected first tag: %+v", tags[0])
	}
	// Comment keys are case-insensitive.
	if tags[1].Name != "Serato Autotags" || !bytes.Equal(tags[1].Data, autotagsBody) {
		t.Errorf("unexpected second tag: %+v", tags[1])
	}
}

func TestExtract_NoSeratoComments(t *testing.T) {
	data := buildFLAC(buildVorbisBlock("TITLE=Plain Track", "ARTIST=Somebody"))

	tags, warnings, err := extractor{}.Extract(bytes.NewReader(data), int64(len(data)), "plain.flac")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 0 || len(warnings) != 0 {
		t.Errorf("expected nothing, got tags=%v warnings=%v", tags, warnings)
	}
}

func TestExtract_BadMagic(t *testing.T) {
	data := []byte("OggSnotflac")
	if _, _, err := (extractor{}).Extract(bytes.NewReader(data), int64(len(data)), "bad.flac"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestExtract_CorruptEnvelopeWarns(t *testing.T) {
	data := buildFLAC(buildVorbisBlock(
		"SERATO_BEATGRID=!!!not base64!!!",
	))

	tags, warnings, err := extractor{}.Extract(bytes.NewReader(data), int64(len(data)), "test.flac")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
	if len(warnings) != 1 {
		t.Errorf("expected one warning, got %v", warnings)
	}
}

// Package flac extracts Serato tags from FLAC Vorbis comments.
//
// FLAC files carry Serato metadata as SERATO_* Vorbis comments whose
// values are base64 envelopes around the same tag bodies ID3 stores in
// GEOB frames. The legacy "Serato Markers_" tag has no FLAC spelling;
// reconciliation degrades to Markers2-only data for FLAC sources.
package flac

import (
	"fmt"
	"io"
	"strings"

	binutil "github.com/crateworks/seratotag/internal/binary"
	"github.com/crateworks/seratotag/internal/registry"
	"github.com/crateworks/seratotag/internal/tag"
	"github.com/crateworks/seratotag/internal/types"
)

func init() {
	registry.Register(types.FormatFLAC, extractor{})
}

// Metadata block types.
const (
	blockTypeVorbisComment = 4
)

// commentNames maps SERATO_* Vorbis comment keys to canonical tag names.
var commentNames = map[string]string{
	"SERATO_ANALYSIS":   tag.NameAnalysis,
	"SERATO_AUTOGAIN":   tag.NameAutotags,
	"SERATO_BEATGRID":   tag.NameBeatGrid,
	"SERATO_MARKERS_V2": tag.NameMarkers2,
	"SERATO_OVERVIEW":   tag.NameOverview,
}

type extractor struct{}

// Extract walks the FLAC metadata blocks to the Vorbis comment block and
// unwraps every SERATO_* comment it finds.
func (extractor) Extract(r io.ReaderAt, size int64, path string) ([]types.RawTag, []types.Warning, error) {
	sr := binutil.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "FLAC magic bytes"); err != nil {
		return nil, nil, fmt.Errorf("read FLAC magic: %w", err)
	}
	if string(magic) != "fLaC" {
		return nil, nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: "invalid FLAC magic bytes",
		}
	}

	var tags []types.RawTag
	var warnings []types.Warning

	offset := int64(4)
	for offset < size {
		header, err := binutil.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			warnings = append(warnings, types.Warning{
				Stage:   "extract",
				Message: fmt.Sprintf("failed to read metadata block header: %v", err),
				Offset:  offset,
			})
			break
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)
		offset += 4

		if blockType == blockTypeVorbisComment {
			blockTags, blockWarnings := parseVorbisComments(sr, offset, blockLength)
			tags = append(tags, blockTags...)
			warnings = append(warnings, blockWarnings...)
		}

		offset += blockLength
		if isLast {
			break
		}
	}

	return tags, warnings, nil
}

// parseVorbisComments scans a VORBIS_COMMENT block for SERATO_* keys.
// Vorbis comment lengths are little-endian, unlike the rest of FLAC.
func parseVorbisComments(sr *binutil.SafeReader, offset, length int64) ([]types.RawTag, []types.Warning) {
	var tags []types.RawTag
	var warnings []types.Warning

	end := offset + length
	r := binutil.NewReader(sr, offset)

	vendorLen, err := binutil.ReadValueLE[uint32](r, "vendor string length")
	if err != nil {
		return nil, []types.Warning{{Stage: "extract", Message: err.Error(), Offset: r.Offset()}}
	}
	r.Skip(int64(vendorLen))

	count, err := binutil.ReadValueLE[uint32](r, "comment count")
	if err != nil {
		return nil, []types.Warning{{Stage: "extract", Message: err.Error(), Offset: r.Offset()}}
	}

	for i := uint32(0); i < count && r.Offset() < end; i++ {
		commentLen, err := binutil.ReadValueLE[uint32](r, "comment length")
		if err != nil {
			warnings = append(warnings, types.Warning{Stage: "extract", Message: err.Error(), Offset: r.Offset()})
			break
		}

		commentOffset := r.Offset()
		comment, err := r.ReadBytes(int(commentLen), "comment")
		if err != nil {
			warnings = append(warnings, types.Warning{Stage: "extract", Message: err.Error(), Offset: commentOffset})
			break
		}

		if rawTag, warning := seratoComment(comment, commentOffset); rawTag != nil {
			tags = append(tags, *rawTag)
		} else if warning != nil {
			warnings = append(warnings, *warning)
		}
	}

	return tags, warnings
}

// seratoComment unwraps a single "KEY=VALUE" comment if the key is one
// of the SERATO_* spellings. Both return values are nil for foreign keys.
func seratoComment(comment []byte, offset int64) (*types.RawTag, *types.Warning) {
	eq := strings.IndexByte(string(comment), '=')
	if eq < 0 {
		return nil, nil
	}

	key := strings.ToUpper(string(comment[:eq]))
	canonical, ok := commentNames[key]
	if !ok {
		return nil, nil
	}

	name, body, err := tag.ParseEnvelope(comment[eq+1:])
	if err != nil {
		return nil, &types.Warning{
			Stage:   "extract",
			Message: fmt.Sprintf("%s: %v", key, err),
			Offset:  offset,
		}
	}

	// The envelope names the tag itself; trust it when present, fall
	// back to the comment key's canonical spelling.
	if name == "" {
		name = canonical
	}

	return &types.RawTag{Name: name, Data: body, Offset: offset}, nil
}

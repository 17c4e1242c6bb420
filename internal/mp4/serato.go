// Package mp4 extracts Serato tags from MP4/M4A freeform metadata atoms.
//
// Serato writes its tags as iTunes-style freeform atoms under
// moov.udta.meta.ilst, with the reverse-DNS mean "com.serato.dj" and a
// per-tag name ("markersv2", ...). Each data payload is the same base64
// envelope FLAC uses.
package mp4

import (
	"fmt"
	"io"

	binutil "github.com/crateworks/seratotag/internal/binary"
	"github.com/crateworks/seratotag/internal/registry"
	"github.com/crateworks/seratotag/internal/tag"
	"github.com/crateworks/seratotag/internal/types"
)

func init() {
	registry.Register(types.FormatMP4, extractor{})
}

// seratoMean identifies Serato's freeform atoms.
const seratoMean = "com.serato.dj"

// atomNames maps Serato's freeform atom names to canonical tag names.
var atomNames = map[string]string{
	"analysisVersion": tag.NameAnalysis,
	"autgain":         tag.NameAutotags,
	"beatgrid":        tag.NameBeatGrid,
	"markers":         tag.NameMarkers,
	"markersv2":       tag.NameMarkers2,
	"overview":        tag.NameOverview,
}

// atom represents an MP4 atom (box) header.
type atom struct {
	size   uint64 // total size including header
	typ    string // 4-character type code
	offset int64  // position in file
}

func (a *atom) dataOffset() int64 { return a.offset + 8 }
func (a *atom) end() int64        { return a.offset + int64(a.size) }

type extractor struct{}

// Extract descends to moov.udta.meta.ilst and unwraps every freeform
// atom carrying the Serato reverse-DNS mean.
func (extractor) Extract(r io.ReaderAt, size int64, path string) ([]types.RawTag, []types.Warning, error) {
	sr := binutil.NewSafeReader(r, size, path)

	ilst, err := findPath(sr, 0, size, "moov", "udta", "meta", "ilst")
	if err != nil {
		// A file without the metadata chain simply has no Serato tags.
		return nil, []types.Warning{{
			Stage:   "extract",
			Message: fmt.Sprintf("no metadata atoms: %v", err),
		}}, nil
	}

	var tags []types.RawTag
	var warnings []types.Warning

	offset := ilst.dataOffset()
	for offset < ilst.end() {
		a, err := readAtomHeader(sr, offset)
		if err != nil {
			warnings = append(warnings, types.Warning{
				Stage:   "extract",
				Message: fmt.Sprintf("truncated ilst atom: %v", err),
				Offset:  offset,
			})
			break
		}

		if a.typ == "----" {
			if rawTag, warning := parseFreeform(sr, a); rawTag != nil {
				tags = append(tags, *rawTag)
			} else if warning != nil {
				warnings = append(warnings, *warning)
			}
		}

		offset = a.end()
	}

	return tags, warnings, nil
}

// parseFreeform decodes one "----" atom: child atoms mean, name, data.
// Returns a nil tag for freeform atoms owned by other applications.
func parseFreeform(sr *binutil.SafeReader, parent *atom) (*types.RawTag, *types.Warning) {
	var mean, name string
	var payload []byte

	offset := parent.dataOffset()
	for offset < parent.end() {
		child, err := readAtomHeader(sr, offset)
		if err != nil {
			return nil, &types.Warning{
				Stage:   "extract",
				Message: fmt.Sprintf("truncated freeform atom: %v", err),
				Offset:  offset,
			}
		}

		body := make([]byte, child.end()-child.dataOffset())
		if err := sr.ReadAt(body, child.dataOffset(), child.typ+" atom body"); err != nil {
			return nil, &types.Warning{
				Stage:   "extract",
				Message: err.Error(),
				Offset:  offset,
			}
		}

		switch child.typ {
		case "mean":
			// 4 bytes version/flags, then the reverse-DNS string.
			if len(body) > 4 {
				mean = string(body[4:])
			}
		case "name":
			if len(body) > 4 {
				name = string(body[4:])
			}
		case "data":
			// 4 bytes type indicator, 4 bytes locale, then the value.
			if len(body) > 8 {
				payload = body[8:]
			}
		}

		offset = child.end()
	}

	if mean != seratoMean {
		return nil, nil
	}

	canonical, ok := atomNames[name]
	if !ok {
		return nil, nil
	}

	embedded, body, err := tag.ParseEnvelope(payload)
	if err != nil {
		return nil, &types.Warning{
			Stage:   "extract",
			Message: fmt.Sprintf("%s: %v", name, err),
			Offset:  parent.offset,
		}
	}
	if embedded != "" {
		canonical = embedded
	}

	return &types.RawTag{Name: canonical, Data: body, Offset: parent.offset}, nil
}

// readAtomHeader reads an atom header at the given offset.
func readAtomHeader(sr *binutil.SafeReader, offset int64) (*atom, error) {
	size32, err := binutil.Read[uint32](sr, offset, "atom size")
	if err != nil {
		return nil, err
	}

	typeBytes := make([]byte, 4)
	if err := sr.ReadAt(typeBytes, offset+4, "atom type"); err != nil {
		return nil, err
	}

	a := &atom{
		typ:    string(typeBytes),
		offset: offset,
		size:   uint64(size32),
	}

	// Extended 64-bit sizes never occur in the metadata atoms Serato
	// touches, but handle the framing so the walk does not derail.
	if size32 == 1 {
		size64, err := binutil.Read[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return nil, err
		}
		a.size = size64
	}

	if a.size < 8 {
		return nil, &types.CorruptedTagError{
			Tag:    "mp4",
			Offset: offset,
			Reason: fmt.Sprintf("invalid atom size %d (minimum is 8)", a.size),
		}
	}

	return a, nil
}

// findAtom searches for an atom of the given type within a byte range.
func findAtom(sr *binutil.SafeReader, start, end int64, atomType string) (*atom, error) {
	offset := start
	for offset < end {
		a, err := readAtomHeader(sr, offset)
		if err != nil {
			return nil, err
		}
		if a.typ == atomType {
			return a, nil
		}
		offset = a.end()
	}
	return nil, fmt.Errorf("atom %q not found", atomType)
}

// findPath descends through nested container atoms.
func findPath(sr *binutil.SafeReader, start, end int64, path ...string) (*atom, error) {
	var a *atom
	for _, typ := range path {
		found, err := findAtom(sr, start, end, typ)
		if err != nil {
			return nil, err
		}
		a = found
		start = a.dataOffset()
		// meta is a full atom: 4 bytes of version/flags precede its children.
		if a.typ == "meta" {
			start += 4
		}
		end = a.end()
	}
	return a, nil
}

package seratotag

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/crateworks/seratotag/internal/registry"
	"github.com/crateworks/seratotag/internal/tag"
	"github.com/crateworks/seratotag/internal/types"

	// Register the container-format extractors.
	_ "github.com/crateworks/seratotag/internal/flac"
	_ "github.com/crateworks/seratotag/internal/id3"
	_ "github.com/crateworks/seratotag/internal/mp4"
)

// File is an opened audio file with its Serato metadata extracted and
// decoded into a Container.
//
// Open reads everything it needs up front and releases the file handle
// before returning; a File holds no resources.
type File struct {
	// Path to the audio file
	Path string

	// Detected host container format (MP3, FLAC, MP4)
	Format Format

	// File size in bytes
	Size int64

	// Tags holds the decoded tag records and answers the reconciled
	// queries (Cues, Loops, TrackColor, ...).
	Tags *Container

	// Warnings encountered during extraction and decoding (non-fatal issues)
	Warnings []Warning
}

// Open opens an audio file and extracts its Serato metadata.
//
// Supported formats: MP3 (ID3v2 GEOB frames), FLAC (Vorbis comments),
// M4A/MP4 (freeform ilst atoms).
//
// A tag that is missing, or that fails to decode, leaves its Container
// slot absent; decode failures are reported through File.Warnings. Open
// only fails when the host container itself cannot be read.
//
// Example:
//
//	file, err := seratotag.Open("track.mp3")
//	if err != nil {
//		return err
//	}
//	for _, cue := range file.Tags.Cues() {
//		fmt.Printf("cue %d at %dms %q\n", cue.Index, cue.PositionMillis, cue.Label)
//	}
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return openReader(f, stat.Size(), path, options)
}

// openReader extracts and decodes from an io.ReaderAt (internal, for testing).
func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	extractor := registry.Get(format)
	if extractor == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no extractor available for format %s", format),
		}
	}

	rawTags, warnings, err := extractor.Extract(r, size, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", format, err)
	}

	file := &File{
		Path:   path,
		Format: format,
		Size:   size,
		Tags:   NewContainer(),
	}

	for _, raw := range rawTags {
		if warning := decodeRecord(raw, file.Tags); warning != nil {
			warnings = append(warnings, *warning)
		}
	}

	if !options.ignoreWarnings {
		file.Warnings = warnings
	}

	if options.strictParsing && len(warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", warnings[0].Message)
	}

	return file, nil
}

// decodeRecord decodes one raw tag body into its Container slot. On a
// decode failure the slot stays absent and a warning is returned: a slot
// only ever receives a fully-valid record.
func decodeRecord(raw types.RawTag, c *Container) *Warning {
	var err error

	switch raw.Name {
	case tag.NameAnalysis:
		c.Analysis, err = tag.ParseAnalysis(raw.Data)
	case tag.NameAutotags:
		c.Autotags, err = tag.ParseAutotags(raw.Data)
	case tag.NameBeatGrid:
		c.BeatGrid, err = tag.ParseBeatGrid(raw.Data)
	case tag.NameMarkers:
		c.Markers, err = tag.ParseMarkers(raw.Data)
	case tag.NameMarkers2:
		c.Markers2, err = tag.ParseMarkers2(raw.Data)
	case tag.NameOverview:
		c.Overview, err = tag.ParseOverview(raw.Data)
	default:
		// Serato tags this library does not interpret, such as
		// "Serato Offsets_". Not an error.
		return nil
	}

	if err != nil {
		return &Warning{
			Stage:   "decode",
			Message: err.Error(),
			Offset:  raw.Offset,
		}
	}
	return nil
}

// OpenContext opens a file with context support for cancellation.
//
// This is a thin wrapper around Open() that checks context before starting.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails to open, an error is returned and all results are discarded.
//
// Example:
//
//	files, err := seratotag.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %d cues\n", f.Path, len(f.Tags.Cues()))
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

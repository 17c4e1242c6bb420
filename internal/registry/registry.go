// Package registry manages format-specific Serato tag extractors.
package registry

import (
	"io"

	"github.com/crateworks/seratotag/internal/types"
)

// Extractor is the interface all container-format extractors implement.
type Extractor interface {
	// Extract locates the Serato tag bodies inside the host container.
	// It returns the raw tags with container envelopes removed and
	// canonical names assigned, plus any non-fatal warnings. An error is
	// returned only when the container structure itself is unreadable.
	Extract(r io.ReaderAt, size int64, path string) ([]types.RawTag, []types.Warning, error)
}

// extractors maps formats to their extractors.
var extractors = make(map[types.Format]Extractor)

// Register registers an extractor for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, e Extractor) {
	extractors[format] = e
}

// Get returns the extractor for a given format.
// Returns nil if no extractor is registered for the format.
func Get(format types.Format) Extractor {
	return extractors[format]
}

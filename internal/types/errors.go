package types

import "fmt"

// OutOfBoundsError is returned when attempting to read beyond file bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedFormatError is returned when the host file format cannot
// carry Serato tags or is not recognized at all.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedTagError is returned when a Serato tag body does not match
// its expected binary layout.
type CorruptedTagError struct {
	Tag    string
	Reason string
	Offset int64
}

func (e *CorruptedTagError) Error() string {
	return fmt.Sprintf("%s: corrupted tag at offset %d: %s", e.Tag, e.Offset, e.Reason)
}

// Warning represents a non-fatal issue encountered while extracting or
// reconciling Serato metadata.
//
// Warnings indicate problems that don't prevent extraction but may
// indicate corrupted or unusual data. Examples include:
//   - A tag body that fails to decode (the slot stays absent)
//   - A legacy cue entry missing its start position
//   - An unrecognized entry kind in a cue or loop context
//
// Warnings are collected in File.Warnings during extraction and emitted
// through the Container diagnostics hook during reconciliation.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "extract", "decode", "cues", "loops"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

package seratotag

import (
	"github.com/crateworks/seratotag/internal/types"
)

// OutOfBoundsError is returned when a read would exceed the file bounds.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is returned when the host file format is not
// recognized or cannot carry Serato tags.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedTagError is returned when a Serato tag body does not match
// its expected binary layout.
type CorruptedTagError = types.CorruptedTagError

// Warning is a non-fatal issue encountered during extraction or
// reconciliation.
type Warning = types.Warning

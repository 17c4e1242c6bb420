package seratotag

// Option configures behavior when opening audio files.
//
// Options use the functional options pattern:
//
//	file, err := seratotag.Open("track.mp3",
//	    seratotag.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, Open degrades gracefully: a Serato tag that fails to
// decode leaves its Container slot absent and adds a warning, and the
// rest of the file is still usable. With strict parsing enabled, any
// warning becomes a fatal error.
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses warning collection entirely.
//
// Use when only the reconciled values matter and data-quality signals
// are not of interest.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

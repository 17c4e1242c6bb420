// Package seratotag reads the performance metadata Serato DJ embeds in
// audio files: cue points, saved loops, the beat grid, track color, gain
// values, and the waveform overview.
//
// # Quick Start
//
// Reading metadata from an audio file:
//
//	file, err := seratotag.Open("track.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, cue := range file.Tags.Cues() {
//		fmt.Printf("cue %d  %6dms  %s  %q\n",
//			cue.Index, cue.PositionMillis, cue.Color, cue.Label)
//	}
//
// # Reconciliation
//
// Serato stores some facts redundantly: both the legacy "Serato
// Markers_" tag and the newer "Serato Markers2" tag describe cues,
// loops, and the track color, and they can disagree. The Container type
// answers each semantic query by merging across tags with the same
// precedence rules Serato applies: the legacy tag wins for positions,
// colors, and existence; Markers2 is authoritative for labels, which
// the legacy tag cannot encode; and an unused legacy cue slot deletes
// the cue even when Markers2 defines it.
//
// The six tag records can also be supplied directly when the caller
// extracts tag bytes itself:
//
//	c := seratotag.NewContainer()
//	c.Markers2, _ = seratotag.ParseMarkers2(body)
//	loops := c.Loops()
//
// # Supported Formats
//
//   - MP3: ID3v2.3/2.4 GEOB frames
//   - FLAC: base64-encoded SERATO_* Vorbis comments
//   - M4A/MP4: freeform com.serato.dj metadata atoms
//
// # Error Handling
//
// seratotag distinguishes between fatal errors and warnings:
//
//   - Fatal errors prevent reading entirely (file not found, unreadable
//     container structure)
//   - Warnings indicate non-fatal issues (a tag body that fails to
//     decode, a malformed marker entry)
//
// Open collects warnings in File.Warnings; the Container reports
// malformed markers encountered during reconciliation through the
// WithDiagnostics hook. Queries never fail: every query returns a
// best-effort result over whatever slots are populated.
//
// This library never writes: it is a read-only view over the tags, and
// re-encoding reconciled data back into a file is out of scope.
package seratotag

package seratotag

import (
	"github.com/crateworks/seratotag/internal/tag"
	"github.com/crateworks/seratotag/internal/types"
)

// The tag record types are implemented in internal/tag and re-exported
// here so the Container slots and query results are usable without
// importing internal packages.

// Analysis is the decoded "Serato Analysis" tag.
type Analysis = tag.Analysis

// Autotags is the decoded "Serato Autotags" tag.
type Autotags = tag.Autotags

// BeatGrid is the decoded "Serato BeatGrid" tag.
type BeatGrid = tag.BeatGrid

// Markers is the decoded legacy "Serato Markers_" tag.
type Markers = tag.Markers

// Markers2 is the decoded "Serato Markers2" tag.
type Markers2 = tag.Markers2

// Overview is the decoded "Serato Overview" tag.
type Overview = tag.Overview

// Markers2Entry is one decoded entry of the "Serato Markers2" tag.
type Markers2Entry = tag.Entry

// CueMarker is a cue point, as stored in Markers2 and as returned by
// Container.Cues.
type CueMarker = tag.CueMarker

// LoopMarker is a saved loop, as stored in Markers2 and as returned by
// Container.Loops.
type LoopMarker = tag.LoopMarker

// TrackColorEntry is the Markers2 entry carrying the track color.
type TrackColorEntry = tag.TrackColorEntry

// BPMLockEntry is the Markers2 entry carrying the beat grid lock flag.
type BPMLockEntry = tag.BPMLockEntry

// UnknownEntry preserves Markers2 entries this library does not interpret.
type UnknownEntry = tag.UnknownEntry

// GridMarker is a non-terminal beat grid marker.
type GridMarker = tag.GridMarker

// TerminalGridMarker is the final beat grid marker, carrying the BPM to
// the end of the track.
type TerminalGridMarker = tag.TerminalGridMarker

// MarkerEntry is one slot of the legacy "Serato Markers_" tag.
type MarkerEntry = tag.MarkerEntry

// EntryType tags a legacy marker slot as a cue, a loop, or unused.
type EntryType = tag.EntryType

// Legacy marker slot types.
const (
	EntryTypeInvalid = tag.EntryTypeInvalid
	EntryTypeCue     = tag.EntryTypeCue
	EntryTypeLoop    = tag.EntryTypeLoop
)

// TagVersion is the two-byte version header Serato tags start with.
type TagVersion = tag.Version

// Color is an RGB track or marker color.
type Color = types.Color

// Decoders for already-extracted tag bodies, for callers that locate
// tag bytes themselves.
var (
	ParseAnalysis = tag.ParseAnalysis
	ParseAutotags = tag.ParseAutotags
	ParseBeatGrid = tag.ParseBeatGrid
	ParseMarkers  = tag.ParseMarkers
	ParseMarkers2 = tag.ParseMarkers2
	ParseOverview = tag.ParseOverview
)

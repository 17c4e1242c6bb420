package seratotag

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/crateworks/seratotag/internal/tag"
)

// Container provides a streamlined interface for retrieving Serato tag data.
//
// Some of the data in Serato's tags is redundant and may contradict
// itself: the legacy "Serato Markers_" tag and the newer "Serato
// Markers2" tag both describe cues, loops, and the track color.
// Container implements the same merge strategies for inconsistent data
// that Serato uses.
//
// A Container starts with all six slots absent. Slots are assigned
// directly, each at most once, before queries run:
//
//	c := seratotag.NewContainer()
//	c.Markers2 = markers2
//	c.Markers = markers
//	for _, cue := range c.Cues() {
//	    fmt.Println(cue.Index, cue.Label)
//	}
//
// Queries never modify the slots, so once all slots are published a
// Container is safe for concurrent readers. Queries recompute from the
// slot contents on every call; results are not cached.
type Container struct {
	Analysis *Analysis
	Autotags *Autotags
	BeatGrid *BeatGrid
	Markers  *Markers
	Markers2 *Markers2
	Overview *Overview

	diag func(Warning)
}

// ContainerOption configures a Container at construction time.
type ContainerOption func(*Container)

// WithDiagnostics installs a hook that receives a Warning whenever a
// query drops or skips a malformed marker entry. Reconciliation is
// best-effort and never fails outright; the hook is the only signal
// that input data was inconsistent.
func WithDiagnostics(fn func(Warning)) ContainerOption {
	return func(c *Container) {
		c.diag = fn
	}
}

// NewContainer creates an empty Serato tag container.
func NewContainer(opts ...ContainerOption) *Container {
	c := &Container{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Container) report(stage, format string, args ...any) {
	if c.diag != nil {
		c.diag(Warning{Stage: stage, Message: fmt.Sprintf(format, args...)})
	}
}

// AutoGain returns the auto gain value from the "Serato Autotags" tag.
func (c *Container) AutoGain() (float64, bool) {
	if c.Autotags == nil {
		return 0, false
	}
	return c.Autotags.AutoGain, true
}

// GainDB returns the gain dB value from the "Serato Autotags" tag.
func (c *Container) GainDB() (float64, bool) {
	if c.Autotags == nil {
		return 0, false
	}
	return c.Autotags.GainDB, true
}

// BeatGridMarkers returns the beat grid from the "Serato BeatGrid" tag:
// the non-terminal markers in order, and the terminal marker. Both are
// nil when the tag is absent.
func (c *Container) BeatGridMarkers() ([]GridMarker, *TerminalGridMarker) {
	if c.BeatGrid == nil {
		return nil, nil
	}
	terminal := c.BeatGrid.Terminal
	return c.BeatGrid.NonTerminal, &terminal
}

// BPMLocked returns the beat grid lock flag from the "Serato Markers2"
// tag. The second return is false when the tag is absent or encodes no
// lock state.
func (c *Container) BPMLocked() (bool, bool) {
	if c.Markers2 == nil {
		return false, false
	}
	return c.Markers2.BPMLocked()
}

// WaveformOverview returns the waveform summary rows from the "Serato
// Overview" tag, or nil when absent.
func (c *Container) WaveformOverview() [][]byte {
	if c.Overview == nil {
		return nil
	}
	return c.Overview.Data
}

// Cues returns the reconciled cue list, sorted ascending by index.
//
// The "Serato Markers2" cues are collected first, then overwritten with
// the values from "Serato Markers_". This is what Serato does too: when
// the two tags contradict each other, the legacy tag wins for position,
// color, and existence, while Markers2 stays authoritative for labels,
// which the legacy tag cannot encode. Cue indices known only to the
// legacy tag are not surfaced.
func (c *Container) Cues() []CueMarker {
	merged := make(map[uint8]CueMarker)

	if c.Markers2 != nil {
		for _, cue := range c.Markers2.Cues() {
			merged[cue.Index] = cue
		}
	}

	if c.Markers != nil {
		for index, entry := range c.Markers.CueEntries() {
			switch entry.Type {
			case tag.EntryTypeInvalid:
				// An invalid slot is an explicit deletion, overriding
				// whatever Markers2 put there.
				delete(merged, index)

			case tag.EntryTypeCue:
				if entry.StartMillis == nil {
					// Not possible when the legacy tag data is valid.
					c.report("cues", "cue %d has no start position, dropping", index)
					delete(merged, index)
					continue
				}

				prev, ok := merged[index]
				if !ok {
					continue
				}
				merged[index] = CueMarker{
					Index:          index,
					PositionMillis: *entry.StartMillis,
					Color:          entry.Color,
					Label:          prev.Label,
				}

			default:
				// A loop type in a cue slot means the legacy tag is
				// inconsistent with Serato's own slot layout.
				c.report("cues", "cue %d has unexpected entry type %s, ignoring", index, entry.Type)
			}
		}
	}

	cues := make([]CueMarker, 0, len(merged))
	for _, cue := range merged {
		cues = append(cues, cue)
	}
	slices.SortFunc(cues, func(a, b CueMarker) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return cues
}

// Loops returns the reconciled loop list, sorted ascending by index.
//
// Same precedence as Cues: "Serato Markers_" values overwrite the
// "Serato Markers2" ones, except for labels. Loop indices known only to
// the legacy tag are not surfaced.
func (c *Container) Loops() []LoopMarker {
	merged := make(map[uint8]LoopMarker)

	if c.Markers2 != nil {
		for _, l := range c.Markers2.Loops() {
			merged[l.Index] = l
		}
	}

	if c.Markers != nil {
		for index, entry := range c.Markers.LoopEntries() {
			if entry.Type != tag.EntryTypeLoop {
				if entry.Type != tag.EntryTypeInvalid {
					c.report("loops", "loop %d has unexpected entry type %s, ignoring", index, entry.Type)
				}
				continue
			}

			if entry.StartMillis == nil || entry.EndMillis == nil {
				// Not possible when the legacy tag data is valid.
				c.report("loops", "loop %d is missing a position, dropping", index)
				delete(merged, index)
				continue
			}

			prev, ok := merged[index]
			if !ok {
				continue
			}
			merged[index] = LoopMarker{
				Index:       index,
				StartMillis: *entry.StartMillis,
				EndMillis:   *entry.EndMillis,
				Color:       entry.Color,
				Locked:      entry.Locked,
				Label:       prev.Label,
			}
		}
	}

	loops := make([]LoopMarker, 0, len(merged))
	for _, l := range merged {
		loops = append(loops, l)
	}
	slices.SortFunc(loops, func(a, b LoopMarker) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return loops
}

// TrackColor returns the reconciled track color.
//
// The "Serato Markers2" color is read first, then overwritten with the
// one from "Serato Markers_", which always carries a color when the tag
// is present. The second return is false when neither tag provides one.
func (c *Container) TrackColor() (Color, bool) {
	var color Color
	ok := false

	if c.Markers2 != nil {
		color, ok = c.Markers2.TrackColor()
	}
	if c.Markers != nil {
		color, ok = c.Markers.TrackColor, true
	}

	return color, ok
}

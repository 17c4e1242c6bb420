// serato-dump prints the Serato metadata embedded in audio files.
package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/crateworks/seratotag"
)

func main() {
	root := &cobra.Command{
		Use:          "serato-dump",
		Short:        "Inspect Serato DJ metadata embedded in audio files",
		SilenceUsage: true,
	}

	root.AddCommand(infoCmd(), cuesCmd(), loopsCmd(), gridCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// open opens the file and prints any warnings to stderr.
func open(path string) (*seratotag.File, error) {
	file, err := seratotag.Open(path)
	if err != nil {
		return nil, err
	}
	for _, w := range file.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return file, nil
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show which Serato tags are present and the scalar values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := open(args[0])
			if err != nil {
				return err
			}

			c := file.Tags
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Field", "Value"})

			t.AppendRow(table.Row{"Format", file.Format})
			t.AppendRow(table.Row{"Analyzed", c.Analysis != nil})
			if gain, ok := c.AutoGain(); ok {
				t.AppendRow(table.Row{"Auto gain", fmt.Sprintf("%.3f", gain)})
			}
			if gain, ok := c.GainDB(); ok {
				t.AppendRow(table.Row{"Gain dB", fmt.Sprintf("%.3f", gain)})
			}
			if locked, ok := c.BPMLocked(); ok {
				t.AppendRow(table.Row{"BPM locked", locked})
			}
			if color, ok := c.TrackColor(); ok {
				t.AppendRow(table.Row{"Track color", color})
			}
			t.AppendRow(table.Row{"Cues", len(c.Cues())})
			t.AppendRow(table.Row{"Loops", len(c.Loops())})
			t.AppendRow(table.Row{"Overview rows", len(c.WaveformOverview())})

			t.Render()
			return nil
		},
	}
}

func cuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cues <file>",
		Short: "List the reconciled cue points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := open(args[0])
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Index", "Position (ms)", "Color", "Label"})
			t.AppendRows(lo.Map(file.Tags.Cues(), func(c seratotag.CueMarker, _ int) table.Row {
				return table.Row{c.Index, c.PositionMillis, c.Color, c.Label}
			}))
			t.Render()
			return nil
		},
	}
}

func loopsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loops <file>",
		Short: "List the reconciled saved loops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := open(args[0])
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Index", "Start (ms)", "End (ms)", "Color", "Locked", "Label"})
			t.AppendRows(lo.Map(file.Tags.Loops(), func(l seratotag.LoopMarker, _ int) table.Row {
				return table.Row{l.Index, l.StartMillis, l.EndMillis, l.Color, l.Locked, l.Label}
			}))
			t.Render()
			return nil
		},
	}
}

func gridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid <file>",
		Short: "List the beat grid markers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := open(args[0])
			if err != nil {
				return err
			}

			markers, terminal := file.Tags.BeatGridMarkers()
			if terminal == nil {
				fmt.Println("no beat grid")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Position (s)", "Beats to next", "BPM"})
			t.AppendRows(lo.Map(markers, func(m seratotag.GridMarker, _ int) table.Row {
				return table.Row{fmt.Sprintf("%.3f", m.Position), m.BeatsTillNext, ""}
			}))
			t.AppendRow(table.Row{fmt.Sprintf("%.3f", terminal.Position), "", fmt.Sprintf("%.2f", terminal.BPM)})
			t.Render()
			return nil
		},
	}
}

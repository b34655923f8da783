package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jsphweid/musixbooth/midi"
	"github.com/jsphweid/musixbooth/model"
	"github.com/jsphweid/musixbooth/scale"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	identifyMidi string
	identifyRoot string
)

func init() {
	identifyCmd.Flags().StringVar(&identifyMidi, "midi", "", "read the notes from a MIDI file")
	identifyCmd.Flags().StringVar(&identifyRoot, "root", "", "only show scales on this root")
	rootCmd.AddCommand(identifyCmd)
}

var identifyCmd = &cobra.Command{
	Use:   "identify [note...]",
	Short: "Find scales that fit a set of notes",
	Long: `Find scales that fit a set of notes. Notes are names (C, F#, Bb) or
pitch classes 0-11. With --midi every note played in the file is used.`,
	Example: `  musixbooth identify C E G
  musixbooth identify 0 4 7 --root A
  musixbooth identify --midi song.mid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selectionFromArgs(args, identifyMidi, identifyRoot)
		if err != nil {
			return err
		}
		return printMatches(cmd.OutOrStdout(), sel, scale.NewMatcher().MatchSelection(sel))
	},
}

func selectionFromArgs(args []string, midiPath, root string) (scale.Selection, error) {
	var notes []int
	if midiPath != "" {
		fromFile, err := midi.PitchClassesFromFile(midiPath)
		if err != nil {
			return scale.Selection{}, err
		}
		notes = append(notes, fromFile...)
	}
	parsed, err := scale.ParseNotes(args)
	if err != nil {
		return scale.Selection{}, err
	}
	notes = append(notes, parsed...)
	if len(notes) == 0 {
		return scale.Selection{}, errors.New("no notes given")
	}

	sel := scale.NewSelection(notes...)
	if root != "" {
		pc, err := scale.ParseNote(root)
		if err != nil {
			return scale.Selection{}, err
		}
		sel = sel.SetRoot(pc)
	}
	return sel, nil
}

func noteList(pcs []int) string {
	if len(pcs) == 0 {
		return "-"
	}
	names := make([]string, len(pcs))
	for i, pc := range pcs {
		names[i] = scale.NoteName(pc)
	}
	return strings.Join(names, " ")
}

func printMatches(out io.Writer, sel scale.Selection, matches []model.Match) error {
	fmt.Fprintf(out, "Notes: %s\n", noteList(sel.Notes()))
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matching scales")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCALE\tMATCH\tMISSING\tEXTRA")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%d%%\t%s\t%s\n", m.Name, m.Percentage, noteList(m.Missing), noteList(m.Extra))
	}
	return w.Flush()
}

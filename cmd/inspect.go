package cmd

import (
	"fmt"

	"github.com/jsphweid/musixbooth/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Lists the tracks of a MIDI file and the pitch classes it plays.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "tracks: %v\n", len(s.Tracks))
		fmt.Fprintf(out, "time format: %v\n", s.TimeFormat)
		fmt.Fprintf(out, "pitch classes: %s\n", noteList(midi.PitchClasses(s)))
		return nil
	},
}

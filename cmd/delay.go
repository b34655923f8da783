package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jsphweid/musixbooth/delay"
	"github.com/spf13/cobra"
)

var delayBPM float64

func init() {
	delayCmd.Flags().Float64Var(&delayBPM, "bpm", 0, "tempo (default: the last tapped tempo, or 120)")
	rootCmd.AddCommand(delayCmd)
}

var delayCmd = &cobra.Command{
	Use:   "delay",
	Short: "Delay and reverb times for a tempo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bpm := delayBPM
		if !cmd.Flags().Changed("bpm") {
			bpm = float64(lastTempo(delay.DefaultBPM))
		}
		calc, err := delay.NewCalculator(bpm)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Tempo: %v BPM\n\n", calc.BPM())

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "NOTE\tSTRAIGHT ms\tDOTTED ms\tTRIPLET ms\tHz\t")
		for _, r := range calc.Delays() {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t\n", r.Note, r.StraightMs, r.DottedMs, r.TripletMs, r.Hz)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "REVERB\tPRE-DELAY ms\tDECAY ms\tTOTAL ms\t")
		for _, p := range calc.Reverbs() {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t\n", p.Name, p.PreDelayMs, p.DecayMs, p.TotalMs)
		}
		return w.Flush()
	},
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/musixbooth/tapper"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tempoCmd)
}

var tempoCmd = &cobra.Command{
	Use:   "tempo <ms> <ms> [ms...]",
	Short: "Compute a tempo from tap timestamps",
	Long:  `Compute a tempo from tap timestamps in milliseconds, applying the same rules as live tapping.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taps, err := parseTimestamps(args)
		if err != nil {
			return err
		}
		state := tapper.Replay(cfg.Tapper.Estimator(), taps)
		fmt.Fprintln(cmd.OutOrStdout(), FormatTempo(state))
		return nil
	},
}

func parseTimestamps(args []string) ([]int64, error) {
	res := make([]int64, 0, len(args))
	for _, a := range args {
		ts, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "timestamp %q", a)
		}
		res = append(res, ts)
	}
	return res, nil
}

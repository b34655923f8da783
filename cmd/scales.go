package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jsphweid/musixbooth/scale"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var scalesRoot string

func init() {
	scalesCmd.Flags().StringVar(&scalesRoot, "root", "C", "root to spell the scales from")
	rootCmd.AddCommand(scalesCmd)
}

var scalesCmd = &cobra.Command{
	Use:   "scales [name]",
	Short: "List the scale catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := scale.ParseNote(scalesRoot)
		if err != nil {
			return err
		}

		catalog := scale.Catalog()
		if len(args) == 1 {
			tpl, ok := scale.LookupTemplate(args[0])
			if !ok {
				return errors.Errorf("unknown scale %q", args[0])
			}
			catalog = catalog[:0]
			catalog = append(catalog, tpl)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SCALE\tINTERVALS\tNOTES")
		for _, tpl := range catalog {
			fmt.Fprintf(w, "%s %s\t%v\t%s\n", scale.NoteName(root), tpl.Name, tpl.Intervals, noteList(spell(root, tpl.Intervals)))
		}
		return w.Flush()
	},
}

// spell lists the notes of a scale in scale order starting at root.
func spell(root int, intervals []int) []int {
	res := make([]int, len(intervals))
	for i, iv := range intervals {
		res[i] = (root + iv) % 12
	}
	return res
}

package main

import (
	"fmt"
	"text/tabwriter"

	groundroll "Told/internal/calc/groundroll"

	"github.com/spf13/cobra"
)

func newCurvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List the digitized chart curves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := groundroll.Reference
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "CURVE\tBASELINE (%.0f LB)\tAT %.0f LB\n", set.MaxWeight(), set.Weights[len(set.Weights)-1])
			for _, c := range set.Curves {
				fmt.Fprintf(tw, "%s\t%.0f\t%.0f\n", c.Name, c.Baseline(), c.Values[len(c.Values)-1])
			}
			return tw.Flush()
		},
	}
}

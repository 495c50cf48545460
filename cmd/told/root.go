package main

import (
	"Told/internal/log"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:   "told",
		Short: "PA-28-161 takeoff ground roll from the POH chart",
		Long: `Takeoff performance for the Piper PA-28-161 Warrior, flaps 0.

Density altitude is computed from OAT, field elevation and altimeter
setting, then located between the eight digitized weight curves of the
ground roll chart. Each bounding curve is fitted with a quadratic and
evaluated at the takeoff weight; the ground roll is interpolated between
them.

Subcommands:
  calc    - ground roll for one takeoff, optionally rendering the chart
  da      - pressure and density altitude only
  curves  - list the digitized chart curves`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "development logging")
	root.AddCommand(newCalcCmd(), newDACmd(), newCurvesCmd())
	return root
}

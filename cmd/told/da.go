package main

import (
	"fmt"

	densityalt "Told/internal/calc/densityalt"

	"github.com/spf13/cobra"
)

func newDACmd() *cobra.Command {
	var atm atmosphereFlags
	cmd := &cobra.Command{
		Use:   "da",
		Short: "Compute pressure and density altitude",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := densityalt.Calculate(densityalt.Input{
				OATC:          atm.oat,
				ElevationFt:   atm.elevation,
				AltimeterInHg: &atm.altimeter,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pressure altitude: %.0f ft\n", res.PressureAltitudeFt)
			fmt.Fprintf(out, "ISA temperature:   %.1f C\n", res.StdTempC)
			fmt.Fprintf(out, "Density altitude:  %.0f ft\n", res.DensityAltitudeFt)
			if !res.WithinChart {
				fmt.Fprintln(out, "Outside the ground roll chart")
			}
			return nil
		},
	}
	atm.register(cmd)
	return cmd
}

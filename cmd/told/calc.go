package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	groundroll "Told/internal/calc/groundroll"
	render "Told/internal/calc/render"
	"Told/internal/log"

	"github.com/spf13/cobra"
)

type atmosphereFlags struct {
	oat       float64
	elevation float64
	altimeter float64
}

func (a *atmosphereFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&a.oat, "oat", groundroll.DefaultOAT, "outside air temperature, C")
	cmd.Flags().Float64Var(&a.elevation, "elevation", groundroll.DefaultElevation, "field elevation, ft")
	cmd.Flags().Float64Var(&a.altimeter, "altimeter", groundroll.DefaultAltimeter, "altimeter setting, inHg")
}

func newCalcCmd() *cobra.Command {
	var (
		atm     atmosphereFlags
		weight  float64
		strict  bool
		asJSON  bool
		pngPath string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the takeoff ground roll",
		Example: `  told calc --weight 2000 --oat 25 --elevation 3000
  told calc --weight 2325 --png roll.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := groundroll.Request{
				WeightLb:      &weight,
				OATC:          &atm.oat,
				ElevationFt:   &atm.elevation,
				AltimeterInHg: &atm.altimeter,
				Strict:        strict,
			}
			in, opts, err := req.Resolve()
			if err != nil {
				return err
			}
			res, err := groundroll.Calculate(in, opts)
			if err != nil {
				return err
			}

			if pngPath != "" {
				if err := writePNG(pngPath, groundroll.BuildChart(groundroll.Reference, in.WeightLb, res)); err != nil {
					return err
				}
				log.Infow("chart written", "path", pngPath)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(out, in, res)
			return nil
		},
	}
	atm.register(cmd)
	cmd.Flags().Float64Var(&weight, "weight", groundroll.DefaultWeight, "takeoff weight, lb")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when density altitude is off the chart")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&pngPath, "png", "", "write the chart to this PNG file")
	return cmd
}

func printResult(w io.Writer, in groundroll.Input, res groundroll.Result) {
	fmt.Fprintf(w, "Weight:            %.0f lb\n", in.WeightLb)
	fmt.Fprintf(w, "Density altitude:  %.0f ft\n", res.DensityAltitudeFt)
	fmt.Fprintf(w, "Curves:            %s / %s (ratio %.3f)\n", res.LowerCurve, res.UpperCurve, res.Ratio)
	fmt.Fprintf(w, "Ground roll:       %.0f ft\n", res.GroundRollFt)
	if res.Notes != "" {
		fmt.Fprintf(w, "Note: %s\n", res.Notes)
	}
}

func writePNG(path string, c groundroll.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.PNG(c, f); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

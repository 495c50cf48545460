package densityalt

import (
	"fmt"
	"math"

	groundroll "Told/internal/calc/groundroll"
)

type Input struct {
	OATC          float64  `json:"oat_c"`
	ElevationFt   float64  `json:"elevation_ft"`
	AltimeterInHg *float64 `json:"altimeter_inhg"`
}

type Result struct {
	PressureAltitudeFt float64 `json:"pressure_altitude_ft"`
	StdTempC           float64 `json:"std_temp_c"`
	DensityAltitudeFt  float64 `json:"density_altitude_ft"`
	WithinChart        bool    `json:"within_chart"`
	Notes              string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	alt := groundroll.DefaultAltimeter
	if in.AltimeterInHg != nil {
		alt = *in.AltimeterInHg
	}
	for _, v := range []float64{in.OATC, in.ElevationFt, alt} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("invalid input")
		}
	}
	if alt <= 0 {
		return Result{}, fmt.Errorf("invalid altimeter setting")
	}

	da := groundroll.ComputeDensityAltitude(in.OATC, in.ElevationFt, alt)
	lo, hi := groundroll.Reference.Range()
	return Result{
		PressureAltitudeFt: groundroll.PressureAltitude(in.ElevationFt, alt),
		StdTempC:           groundroll.StdTemp(in.ElevationFt),
		DensityAltitudeFt:  da,
		WithinChart:        da >= lo && da <= hi,
		Notes:              "Density altitude = pressure altitude + 120 ft per deg C above standard.",
	}, nil
}

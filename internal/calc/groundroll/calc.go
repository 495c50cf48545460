package groundroll

import (
	"errors"
	"fmt"
	"math"
)

const (
	StdLapseRate = -2.0 / 1000 // deg C per ft
	StdTempSL    = 15.0        // deg C
	StdAltimeter = 29.92       // inHg

	// Primary and secondary axis ranges of the published chart. The
	// secondary axis is overlaid on the primary one.
	ChartDAMin = -6602.0
	ChartDAMax = 8000.0
	ChartGRMin = 0.0
	ChartGRMax = 2200.0

	DefaultWeight    = 2325.0
	DefaultOAT       = 15.0
	DefaultElevation = 1000.0
	DefaultAltimeter = StdAltimeter
)

var (
	ErrOutOfRange   = errors.New("density altitude outside reference curves")
	ErrInvalidInput = errors.New("invalid input")
	ErrNonFinite    = errors.New("calculation produced a non-finite value")
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate rejects NaN and infinite fields.
func (in Input) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"weight_lb", in.WeightLb},
		{"oat_c", in.OATC},
		{"elevation_ft", in.ElevationFt},
		{"altimeter_inhg", in.AltimeterInHg},
	}
	for _, f := range fields {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, f.name)
		}
	}
	return nil
}

// RangeError reports a density altitude the curves do not bracket.
type RangeError struct {
	DensityAltitude float64
	Min, Max        float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("density altitude %.0f ft outside reference curves [%.0f, %.0f]", e.DensityAltitude, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// Policy decides what Compute does with an unbracketed density altitude.
type Policy int

const (
	// PolicyExtrapolate keeps the nearest pair of curves and flags the result.
	PolicyExtrapolate Policy = iota
	// PolicyStrict fails with a *RangeError.
	PolicyStrict
)

type Input struct {
	WeightLb      float64 `json:"weight_lb"`
	OATC          float64 `json:"oat_c"`
	ElevationFt   float64 `json:"elevation_ft"`
	AltimeterInHg float64 `json:"altimeter_inhg"`
}

type Options struct {
	Policy Policy
	Curves *CurveSet // nil means Reference
}

type Result struct {
	DensityAltitudeFt float64 `json:"density_altitude_ft"`
	LowerIndex        int     `json:"lower_index"`
	LowerCurve        string  `json:"lower_curve"`
	UpperCurve        string  `json:"upper_curve"`
	LowerEval         float64 `json:"lower_eval"`
	UpperEval         float64 `json:"upper_eval"`
	Ratio             float64 `json:"ratio"`
	Value             float64 `json:"value"`
	GroundRollFt      float64 `json:"ground_roll_ft"`
	OutOfRange        bool    `json:"out_of_range"`
	OnBoundary        bool    `json:"on_boundary"`
	Notes             string  `json:"notes"`
}

// PressureAltitude in ft.
func PressureAltitude(elevationFt, altimeterInHg float64) float64 {
	return (StdAltimeter-altimeterInHg)*1000 + elevationFt
}

// StdTemp is the standard temperature in deg C at elevationFt.
func StdTemp(elevationFt float64) float64 {
	return elevationFt*StdLapseRate + StdTempSL
}

// ComputeDensityAltitude uses the 120 ft per deg C rule of thumb over
// pressure altitude.
func ComputeDensityAltitude(oatC, elevationFt, altimeterInHg float64) float64 {
	return (oatC-StdTemp(elevationFt))*120 + PressureAltitude(elevationFt, altimeterInHg)
}

// Bracket is a pair of adjacent curves around a density altitude.
type Bracket struct {
	Lower, Upper int
	LowerDA      float64
	UpperDA      float64
	OnBoundary   bool
}

// FindBracket returns the first adjacent pair of curves whose baselines
// strictly contain da. A da equal to a baseline selects the pair that
// starts there, or the last pair for the top baseline. Outside the table
// the nearest pair comes back together with a *RangeError.
func FindBracket(set CurveSet, da float64) (Bracket, error) {
	n := len(set.Curves)
	if n < 2 {
		return Bracket{}, fmt.Errorf("need at least two curves, have %d", n)
	}
	pair := func(i int, boundary bool) Bracket {
		return Bracket{
			Lower:      i,
			Upper:      i + 1,
			LowerDA:    set.Curves[i].Baseline(),
			UpperDA:    set.Curves[i+1].Baseline(),
			OnBoundary: boundary,
		}
	}

	for i := 0; i < n-1; i++ {
		lower, upper := set.Curves[i].Baseline(), set.Curves[i+1].Baseline()
		if lower < da && da < upper {
			return pair(i, false), nil
		}
	}
	for i := 0; i < n-1; i++ {
		if da == set.Curves[i].Baseline() {
			return pair(i, true), nil
		}
	}
	if da == set.Curves[n-1].Baseline() {
		return pair(n-2, true), nil
	}

	lo, hi := set.Range()
	rerr := &RangeError{DensityAltitude: da, Min: lo, Max: hi}
	if da < lo {
		return pair(0, false), rerr
	}
	return pair(n-2, false), rerr
}

// Interpolate weights the two evaluated distances by where da sits between
// the bracketing baselines. da on the upper baseline returns upperEval.
func Interpolate(lowerEval, upperEval, da, lowerDA, upperDA float64) float64 {
	distTop := upperDA - da
	distBot := da - lowerDA
	if distTop == 0 {
		return upperEval
	}
	ratio := distBot / distTop
	if ratio == -1 {
		// lowerDA == upperDA; nothing to weight.
		return lowerEval
	}
	return (ratio*upperEval + lowerEval) / (1 + ratio)
}

// Position is how far da sits from lowerDA towards upperDA: 0 on the lower
// baseline, 1 on the upper one. Coincident baselines give 0.
func Position(da, lowerDA, upperDA float64) float64 {
	span := upperDA - lowerDA
	if span == 0 {
		return 0
	}
	return (da - lowerDA) / span
}

// ToGroundRoll maps a primary axis value onto the overlaid ground roll axis.
func ToGroundRoll(value float64) float64 {
	return (value - ChartDAMin) * (ChartGRMax - ChartGRMin) / (ChartDAMax - ChartDAMin)
}

func Calculate(in Input, opts Options) (Result, error) {
	set := Reference
	if opts.Curves != nil {
		set = *opts.Curves
	}

	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	da := ComputeDensityAltitude(in.OATC, in.ElevationFt, in.AltimeterInHg)
	if !finite(da) {
		return Result{}, fmt.Errorf("%w: density altitude", ErrNonFinite)
	}
	br, err := FindBracket(set, da)
	outOfRange := false
	if err != nil {
		var rerr *RangeError
		if !errors.As(err, &rerr) || opts.Policy == PolicyStrict {
			return Result{}, err
		}
		outOfRange = true
	}

	lower, upper := set.Curves[br.Lower], set.Curves[br.Upper]
	y1, err := FitAndEvaluate(set, lower, in.WeightLb)
	if err != nil {
		return Result{}, err
	}
	y2, err := FitAndEvaluate(set, upper, in.WeightLb)
	if err != nil {
		return Result{}, err
	}

	value := Interpolate(y1, y2, da, br.LowerDA, br.UpperDA)
	if !finite(value) {
		return Result{}, fmt.Errorf("%w: interpolated distance", ErrNonFinite)
	}

	notes := fmt.Sprintf("Interpolated between curves %s and %s.", lower.Name, upper.Name)
	switch {
	case outOfRange:
		notes = fmt.Sprintf("Extrapolated from curves %s and %s; density altitude outside chart.", lower.Name, upper.Name)
	case br.OnBoundary:
		notes = "Density altitude on a reference curve; no interpolation needed."
	}

	return Result{
		DensityAltitudeFt: da,
		LowerIndex:        br.Lower,
		LowerCurve:        lower.Name,
		UpperCurve:        upper.Name,
		LowerEval:         y1,
		UpperEval:         y2,
		Ratio:             Position(da, br.LowerDA, br.UpperDA),
		Value:             value,
		GroundRollFt:      ToGroundRoll(value),
		OutOfRange:        outOfRange,
		OnBoundary:        br.OnBoundary,
		Notes:             notes,
	}, nil
}

// ComputePerformance runs the full pipeline with the reference curves and
// the extrapolating policy.
func ComputePerformance(weight, oatC, elevationFt, altimeterInHg float64) (Chart, Result, error) {
	in := Input{WeightLb: weight, OATC: oatC, ElevationFt: elevationFt, AltimeterInHg: altimeterInHg}
	res, err := Calculate(in, Options{})
	if err != nil {
		return Chart{}, Result{}, err
	}
	return BuildChart(Reference, weight, res), res, nil
}

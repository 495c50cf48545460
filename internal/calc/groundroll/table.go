package groundroll

// Curve is one reference line of the PA-28-161 takeoff ground roll chart
// (0 deg flaps). Values are aligned with Weights.
type Curve struct {
	Name   string
	Values []float64
}

// CurveSet is a family of reference curves sharing one weight axis.
type CurveSet struct {
	Weights []float64
	Curves  []Curve
}

// Weights in lb, heaviest first.
var Weights = []float64{2325, 2300, 2250, 2200, 2150, 2100, 2050, 2000, 1950, 1900, 1850, 1800, 1750, 1700, 1650, 1600}

// Reference is the digitised chart. Curves are ordered by their value at
// 2325 lb, lowest density altitude first; FindBracket depends on it.
var Reference = CurveSet{
	Weights: Weights,
	Curves: []Curve{
		{Name: "One", Values: []float64{-68, -220, -510, -840, -1120, -1450, -1725, -1985, -2275, -2530, -2785, -3050, -3278, -3490, -3700, -3910}},
		{Name: "Two", Values: []float64{1402, 1200, 800, 400, 10, -375, -765, -1115, -1450, -1790, -2125, -2415, -2690, -2950, -3225, -3475}},
		{Name: "Three", Values: []float64{2736, 2485, 2015, 1555, 1080, 665, 225, -200, -585, -950, -1350, -1700, -1995, -2300, -2560, -2810}},
		{Name: "Four", Values: []float64{4070, 3800, 3250, 2700, 2225, 1725, 1250, 750, 350, -100, -550, -925, -1275, -1625, -1935, -2250}},
		{Name: "Five", Values: []float64{5404, 5100, 4500, 3950, 3350, 2750, 2200, 1700, 1200, 685, 225, -225, -650, -995, -1375, -1700}},
		{Name: "Six", Values: []float64{6738, 6400, 5800, 5175, 4600, 4000, 3450, 2850, 2350, 1775, 1275, 775, 300, -150, -600, -995}},
		{Name: "Seven", Values: []float64{8072, 7650, 7000, 6350, 5650, 5000, 4375, 3750, 3150, 2565, 2000, 1450, 950, 410, -50, -450}},
		{Name: "Eight", Values: []float64{9406, 8875, 8150, 7450, 6700, 6050, 5375, 4700, 4050, 3400, 2800, 2200, 1600, 1100, 550, 100}},
	},
}

// Baseline returns the curve value at the heaviest weight, which is the
// density altitude the curve starts from.
func (c Curve) Baseline() float64 {
	return c.Values[0]
}

// MaxWeight is the weight every query line starts from on the chart.
func (s CurveSet) MaxWeight() float64 {
	return s.Weights[0]
}

// Range returns the lowest and highest curve baselines.
func (s CurveSet) Range() (float64, float64) {
	return s.Curves[0].Baseline(), s.Curves[len(s.Curves)-1].Baseline()
}

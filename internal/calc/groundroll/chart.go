package groundroll

const (
	ChartTitle  = "PA-28 Ground Roll Performance | 0 deg Flaps"
	ChartHeight = 600

	// ChartEdgeWeight is where the result line meets the ground roll axis.
	ChartEdgeWeight = 1400.0

	ColorGray = "gray"
	ColorRed  = "red"
)

type AxisID string

const (
	AxisPrimary   AxisID = "y"
	AxisSecondary AxisID = "y2"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Series struct {
	Name       string  `json:"name"`
	Points     []Point `json:"points"`
	Color      string  `json:"color"`
	Dashed     bool    `json:"dashed"`
	Width      float64 `json:"width,omitempty"`
	ShowLegend bool    `json:"show_legend"`
	Axis       AxisID  `json:"axis"`
}

// Range is a closed numeric axis range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Axis struct {
	Title        string  `json:"title"`
	Range        *Range  `json:"range,omitempty"`
	TickInterval float64 `json:"tick_interval,omitempty"`
	Side         string  `json:"side,omitempty"`
	Reversed     bool    `json:"reversed"`
}

// Chart is a renderer-neutral description of the ground roll chart.
type Chart struct {
	Title  string   `json:"title"`
	Height int      `json:"height"`
	Series []Series `json:"series"`
	XAxis  Axis     `json:"xaxis"`
	YAxis  Axis     `json:"yaxis"`
	Y2Axis Axis     `json:"yaxis2"`
}

// BuildChart lays out the reference curves and the query lines for weight
// and res.
func BuildChart(set CurveSet, weight float64, res Result) Chart {
	series := make([]Series, 0, len(set.Curves)+2)
	for _, c := range set.Curves {
		pts := make([]Point, len(set.Weights))
		for i, w := range set.Weights {
			pts[i] = Point{X: w, Y: c.Values[i]}
		}
		series = append(series, Series{Name: c.Name, Points: pts, Color: ColorGray, Axis: AxisPrimary})
	}

	series = append(series,
		Series{
			Name:       "Ground Roll",
			Points:     []Point{{X: set.MaxWeight(), Y: res.DensityAltitudeFt}, {X: weight, Y: res.Value}},
			Color:      ColorRed,
			Dashed:     true,
			Width:      2,
			ShowLegend: true,
			Axis:       AxisPrimary,
		},
		Series{
			Name:   "Interpolated Distance",
			Points: []Point{{X: weight, Y: res.Value}, {X: ChartEdgeWeight, Y: res.Value}},
			Color:  ColorRed,
			Dashed: true,
			Width:  2,
			Axis:   AxisPrimary,
		},
	)

	return Chart{
		Title:  ChartTitle,
		Height: ChartHeight,
		Series: series,
		XAxis:  Axis{Title: "Weight (lb)", Reversed: true},
		YAxis: Axis{
			Title: "Density Altitude (ft)",
			Range: &Range{Min: ChartDAMin, Max: ChartDAMax},
			Side:  "left",
		},
		Y2Axis: Axis{
			Title:        "Ground Roll (ft)",
			Range:        &Range{Min: ChartGRMin, Max: ChartGRMax},
			TickInterval: 200,
			Side:         "right",
		},
	}
}

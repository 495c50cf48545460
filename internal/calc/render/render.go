package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	groundroll "Told/internal/calc/groundroll"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const DefaultWidth = 900

var palette = map[string]drawing.Color{
	groundroll.ColorGray: drawing.ColorFromHex("808080"),
	groundroll.ColorRed:  drawing.ColorFromHex("FF0000"),
}

func color(name string) drawing.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	return drawing.ColorBlack
}

func lineStyle(s groundroll.Series) chart.Style {
	st := chart.Style{
		StrokeColor: color(s.Color),
		StrokeWidth: s.Width,
	}
	if st.StrokeWidth == 0 {
		st.StrokeWidth = 1
	}
	if s.Dashed {
		st.StrokeDashArray = []float64{6, 4}
	}
	return st
}

func axisRange(a groundroll.Axis) *chart.ContinuousRange {
	r := &chart.ContinuousRange{Descending: a.Reversed}
	if a.Range != nil {
		r.Min, r.Max = a.Range.Min, a.Range.Max
	}
	return r
}

// fixedTicks lists ticks from min to max every step.
func fixedTicks(min, max, step float64) []chart.Tick {
	if step <= 0 || max < min {
		return nil
	}
	n := int(math.Floor((max-min)/step + 1e-9))
	ticks := make([]chart.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := min + float64(i)*step
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}
	return ticks
}

func yAxis(a groundroll.Axis) chart.YAxis {
	y := chart.YAxis{
		Name:  a.Title,
		Range: axisRange(a),
	}
	if a.Range != nil && a.TickInterval > 0 {
		y.Ticks = fixedTicks(a.Range.Min, a.Range.Max, a.TickInterval)
	}
	return y
}

// secondaryAnchor is a transparent series on the secondary axis. go-chart
// only draws that axis when some series is bound to it.
func secondaryAnchor(c groundroll.Chart, minX, maxX float64) chart.Series {
	lo, hi := groundroll.ChartGRMin, groundroll.ChartGRMax
	if c.Y2Axis.Range != nil {
		lo, hi = c.Y2Axis.Range.Min, c.Y2Axis.Range.Max
	}
	return chart.ContinuousSeries{
		Style:   chart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
		YAxis:   chart.YAxisSecondary,
		XValues: []float64{minX, maxX},
		YValues: []float64{lo, hi},
	}
}

// ToChart converts the renderer-neutral chart into a go-chart chart. Series
// hidden from the legend are left out of the legend element.
func ToChart(c groundroll.Chart) chart.Chart {
	series := make([]chart.Series, 0, len(c.Series)+1)
	legend := make([]chart.Series, 0, len(c.Series))
	minX, maxX := math.Inf(1), math.Inf(-1)
	secondary := false
	for _, s := range c.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = p.X, p.Y
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		}
		cs := chart.ContinuousSeries{
			Name:    s.Name,
			Style:   lineStyle(s),
			XValues: xs,
			YValues: ys,
		}
		if s.Axis == groundroll.AxisSecondary {
			cs.YAxis = chart.YAxisSecondary
			secondary = true
		}
		series = append(series, cs)
		if s.ShowLegend {
			legend = append(legend, cs)
		}
	}

	if !secondary && len(series) > 0 {
		series = append(series, secondaryAnchor(c, minX, maxX))
	}

	height := c.Height
	if height <= 0 {
		height = groundroll.ChartHeight
	}
	ch := chart.Chart{
		Title:      c.Title,
		Width:      DefaultWidth,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  c.XAxis.Title,
			Range: axisRange(c.XAxis),
		},
		YAxis:          yAxis(c.YAxis),
		YAxisSecondary: yAxis(c.Y2Axis),
		Series:         series,
	}
	if len(legend) > 0 {
		key := chart.Chart{Series: legend}
		ch.Elements = []chart.Renderable{chart.Legend(&key)}
	}
	return ch
}

// PNG writes c as a PNG image.
func PNG(c groundroll.Chart, w io.Writer) error {
	ch := ToChart(c)
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// PNGBytes renders c into memory.
func PNGBytes(c groundroll.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := PNG(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

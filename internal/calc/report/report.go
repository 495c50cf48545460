package report

import (
	"bytes"
	"fmt"
	"time"

	groundroll "Told/internal/calc/groundroll"
	render "Told/internal/calc/render"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Pilot      string             `json:"pilot"`
	TailNumber string             `json:"tail_number"`
	Title      string             `json:"title"`
	Notes      string             `json:"notes"`
	Query      groundroll.Request `json:"query"`
}

// Build lays out a one page takeoff report: header, inputs, results and the
// chart.
func Build(in Input, now time.Time) (*gofpdf.Fpdf, error) {
	q, opts, err := in.Query.Resolve()
	if err != nil {
		return nil, err
	}
	res, err := groundroll.Calculate(q, opts)
	if err != nil {
		return nil, err
	}
	img, err := render.PNGBytes(groundroll.BuildChart(groundroll.Reference, q.WeightLb, res))
	if err != nil {
		return nil, err
	}
	if in.Title == "" {
		in.Title = "PA-28-161 Takeoff Ground Roll"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(in.Title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Pilot: %s", in.Pilot))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Aircraft: %s", in.TailNumber))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	rows := [][2]string{
		{"Weight", fmt.Sprintf("%.0f lb", q.WeightLb)},
		{"Outside air temperature", fmt.Sprintf("%.1f deg C", q.OATC)},
		{"Field elevation", fmt.Sprintf("%.0f ft", q.ElevationFt)},
		{"Altimeter", fmt.Sprintf("%.2f inHg", q.AltimeterInHg)},
		{"Pressure altitude", fmt.Sprintf("%.0f ft", groundroll.PressureAltitude(q.ElevationFt, q.AltimeterInHg))},
		{"Density altitude", fmt.Sprintf("%.0f ft", res.DensityAltitudeFt)},
		{"Reference curves", fmt.Sprintf("%s / %s (ratio %.3f)", res.LowerCurve, res.UpperCurve, res.Ratio)},
		{"Ground roll", fmt.Sprintf("%.0f ft", res.GroundRollFt)},
	}
	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 7, r[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, r[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, res.Notes, "", "L", false)
	if res.OutOfRange {
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 5, "Density altitude is outside the chart; the ground roll is extrapolated.", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(2)

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("chart", opt, bytes.NewReader(img))
	pdf.ImageOptions("chart", pdf.GetX(), pdf.GetY(), 190, 0, true, opt, 0, "")

	if in.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	return pdf, nil
}

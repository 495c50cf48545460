package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	batch "Told/internal/calc/batch"
	groundroll "Told/internal/calc/groundroll"
	"github.com/xuri/excelize/v2"
)

const ExportSheet = "Ground Roll"

var ErrTooManyRows = fmt.Errorf("too many rows, at most %d per sheet", batch.MaxItems)

var errEmptySheet = errors.New("empty sheet")

var exportHeader = []interface{}{
	"Weight (lb)", "OAT (C)", "Elevation (ft)", "Altimeter (inHg)",
	"Density Altitude (ft)", "Lower Curve", "Upper Curve", "Chart Value", "Ground Roll (ft)", "Extrapolated",
}

type Result struct {
	Count   int          `json:"count"`
	Skipped int          `json:"skipped"`
	Results []batch.Item `json:"results"`
}

// ReadQueries reads queries from the first sheet of a workbook. The first
// row is a header. Columns are weight, OAT, elevation and altimeter; empty
// cells take the defaults. Sheets with more than batch.MaxItems data rows
// are rejected with ErrTooManyRows.
func ReadQueries(r io.Reader) ([]groundroll.Request, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, 0, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, 0, errEmptySheet
	}
	if len(rows)-1 > batch.MaxItems {
		return nil, 0, ErrTooManyRows
	}
	reqs, skipped := ParseRows(rows[1:])
	return reqs, skipped, nil
}

// ParseRows converts sheet rows to requests. Blank rows are ignored, rows
// that do not parse are counted as skipped.
func ParseRows(rows [][]string) ([]groundroll.Request, int) {
	var reqs []groundroll.Request
	skipped := 0
	for _, row := range rows {
		if blank(row) {
			continue
		}
		req, err := parseRow(row)
		if err != nil {
			skipped++
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, skipped
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (groundroll.Request, error) {
	var req groundroll.Request
	dst := []**float64{&req.WeightLb, &req.OATC, &req.ElevationFt, &req.AltimeterInHg}
	for i, d := range dst {
		if i >= len(row) {
			break
		}
		s := strings.TrimSpace(row[i])
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return groundroll.Request{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		*d = &v
	}
	return req, nil
}

// Run computes every request, skipping the ones that fail.
func Run(reqs []groundroll.Request, strict bool) Result {
	out := Result{}
	for _, req := range reqs {
		req.Strict = strict
		in, opts, err := req.Resolve()
		if err != nil {
			out.Skipped++
			continue
		}
		res, err := groundroll.Calculate(in, opts)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, batch.Item{Input: in, Result: res})
	}
	out.Count = len(out.Results)
	return out
}

// WriteWorkbook writes the results as a single-sheet workbook.
func WriteWorkbook(w io.Writer, items []batch.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			it.Input.WeightLb, it.Input.OATC, it.Input.ElevationFt, it.Input.AltimeterInHg,
			it.Result.DensityAltitudeFt, it.Result.LowerCurve, it.Result.UpperCurve,
			it.Result.Value, it.Result.GroundRollFt, it.Result.OutOfRange,
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

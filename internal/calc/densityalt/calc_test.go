package densityalt

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCalculate(t *testing.T) {
	alt := 29.92
	res, err := Calculate(Input{OATC: 15, ElevationFt: 1000, AltimeterInHg: &alt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PressureAltitudeFt != 1000 || res.StdTempC != 13 || res.DensityAltitudeFt != 1240 {
		t.Fatalf("got %+v", res)
	}
	if !res.WithinChart {
		t.Fatalf("1240 ft should be within the chart")
	}

	low := 30.92
	res, err = Calculate(Input{OATC: -10, AltimeterInHg: &low})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.WithinChart {
		t.Fatalf("density altitude %v should be outside the chart", res.DensityAltitudeFt)
	}
}

func TestCalculateDefaultsAltimeter(t *testing.T) {
	res, err := Calculate(Input{OATC: 15, ElevationFt: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DensityAltitudeFt != 0 {
		t.Fatalf("got %v", res.DensityAltitudeFt)
	}
}

func TestCalculateInvalid(t *testing.T) {
	zero := 0.0
	if _, err := Calculate(Input{AltimeterInHg: &zero}); err == nil {
		t.Fatalf("expected error for zero altimeter")
	}
	if _, err := Calculate(Input{OATC: math.NaN()}); err == nil {
		t.Fatalf("expected error for NaN temperature")
	}
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tools/densityalt/calc", strings.NewReader(`{"oat_c":15,"elevation_ft":1000,"altimeter_inhg":29.92}`))
	(&Handler{}).Calc(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.DensityAltitudeFt != 1240 {
		t.Fatalf("got %v", res.DensityAltitudeFt)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/tools/densityalt/calc", strings.NewReader(`nope`))
	(&Handler{}).Calc(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
}

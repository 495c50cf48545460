package render

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	groundroll "Told/internal/calc/groundroll"
	chart "github.com/wcharczuk/go-chart/v2"
)

func baselineChart(t *testing.T) groundroll.Chart {
	t.Helper()
	ch, _, err := groundroll.ComputePerformance(2325, 15, 1000, 29.92)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return ch
}

func TestToChart(t *testing.T) {
	ch := ToChart(baselineChart(t))

	// Ten chart series plus the secondary axis anchor.
	if len(ch.Series) != 11 {
		t.Fatalf("series: got %d", len(ch.Series))
	}
	if ch.Series[10].GetYAxis() != chart.YAxisSecondary {
		t.Fatalf("last series should anchor the secondary axis")
	}
	if len(ch.Elements) != 1 {
		t.Fatalf("expected a legend element, got %d elements", len(ch.Elements))
	}
	xr, ok := ch.XAxis.Range.(*chart.ContinuousRange)
	if !ok || !xr.Descending {
		t.Fatalf("x axis should be descending: %#v", ch.XAxis.Range)
	}
	yr, ok := ch.YAxis.Range.(*chart.ContinuousRange)
	if !ok || yr.Min != -6602 || yr.Max != 8000 {
		t.Fatalf("y axis range: %#v", ch.YAxis.Range)
	}
	if n := len(ch.YAxisSecondary.Ticks); n != 12 {
		t.Fatalf("secondary ticks: got %d", n)
	}
	if last := ch.YAxisSecondary.Ticks[11]; last.Value != 2200 || last.Label != "2200" {
		t.Fatalf("last tick: %+v", last)
	}

	diag, ok := ch.Series[8].(chart.ContinuousSeries)
	if !ok || len(diag.Style.StrokeDashArray) == 0 || diag.Style.StrokeWidth != 2 {
		t.Fatalf("diagonal style: %#v", ch.Series[8])
	}
}

func TestFixedTicks(t *testing.T) {
	ticks := fixedTicks(0, 2200, 200)
	if len(ticks) != 12 || ticks[0].Value != 0 || ticks[11].Value != 2200 {
		t.Fatalf("ticks: %+v", ticks)
	}
	if fixedTicks(0, 10, 0) != nil {
		t.Fatalf("zero step should yield no ticks")
	}
}

func TestPNG(t *testing.T) {
	img, err := PNGBytes(baselineChart(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != DefaultWidth || cfg.Height != groundroll.ChartHeight {
		t.Fatalf("size: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestHandlerPNG(t *testing.T) {
	tests := []struct {
		url    string
		status int
	}{
		{url: "/chart.png", status: http.StatusOK},
		{url: "/chart.png?weight=2000&oat_c=25&elevation_ft=3000", status: http.StatusOK},
		{url: "/chart.png?weight=abc", status: http.StatusBadRequest},
		{url: "/chart.png?weight=500", status: http.StatusBadRequest},
		{url: "/chart.png?weight=NaN", status: http.StatusBadRequest},
		{url: "/chart.png?oat_c=Inf", status: http.StatusBadRequest},
		{url: "/chart.png?oat_c=1e307", status: http.StatusUnprocessableEntity},
		{url: "/chart.png?oat_c=-40&elevation_ft=0&strict=1", status: http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		(&Handler{}).PNG(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
		if rec.Code != tt.status {
			t.Fatalf("%s: status %d want %d", tt.url, rec.Code, tt.status)
		}
		if tt.status == http.StatusOK && rec.Header().Get("Content-Type") != "image/png" {
			t.Fatalf("%s: content type %q", tt.url, rec.Header().Get("Content-Type"))
		}
	}
}

package groundroll

import (
	"math"
	"testing"
)

func TestFitExactQuadratic(t *testing.T) {
	f := func(x float64) float64 { return 0.003*x*x - 4*x + 1200 }
	ys := make([]float64, len(Weights))
	for i, w := range Weights {
		ys[i] = f(w)
	}
	p, err := Fit(Weights, ys, 2)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	for _, x := range []float64{1600, 1837, 2000, 2325, 2500} {
		if got, want := p.Eval(x), f(x); math.Abs(got-want) > 1e-6 {
			t.Fatalf("eval(%v): got %v want %v", x, got, want)
		}
	}
}

func TestFitReproducesTable(t *testing.T) {
	// Least squares over 16 points does not pass through every point; the
	// digitised curves stay within about 75 ft of the fit.
	const tolerance = 80.0
	for _, c := range Reference.Curves {
		t.Run(c.Name, func(t *testing.T) {
			for i, w := range Reference.Weights {
				got, err := FitAndEvaluate(Reference, c, w)
				if err != nil {
					t.Fatalf("fit: %v", err)
				}
				if d := math.Abs(got - c.Values[i]); d > tolerance {
					t.Fatalf("weight %v: got %.1f want %.1f (off by %.1f)", w, got, c.Values[i], d)
				}
			}
		})
	}
}

func TestFitKnownCoefficients(t *testing.T) {
	tests := []struct {
		curve  int
		weight float64
		want   float64
	}{
		{curve: 0, weight: 2325, want: -48.8627},
		{curve: 1, weight: 2325, want: 1424.1170},
		{curve: 3, weight: 2000, want: 764.5019},
		{curve: 7, weight: 1800, want: 2214.8157},
	}
	for _, tt := range tests {
		c := Reference.Curves[tt.curve]
		got, err := FitAndEvaluate(Reference, c, tt.weight)
		if err != nil {
			t.Fatalf("%s: %v", c.Name, err)
		}
		if math.Abs(got-tt.want) > 1e-3 {
			t.Fatalf("%s at %v: got %.4f want %.4f", c.Name, tt.weight, got, tt.want)
		}
	}
}

func TestFitErrors(t *testing.T) {
	if _, err := Fit([]float64{1, 2, 3}, []float64{1, 2}, 2); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if _, err := Fit([]float64{1, 2}, []float64{1, 2}, 2); err == nil {
		t.Fatalf("expected underdetermined error")
	}
}

package groundroll

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Poly is a least-squares polynomial in a centred and scaled variable
// u = (x - Center) / Scale. Coeffs[i] multiplies u^i.
type Poly struct {
	Coeffs []float64
	Center float64
	Scale  float64
}

// Eval evaluates the polynomial at x.
func (p Poly) Eval(x float64) float64 {
	u := (x - p.Center) / p.Scale
	y := 0.0
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		y = y*u + p.Coeffs[i]
	}
	return y
}

// Fit returns the least-squares polynomial of the given degree through
// (xs[i], ys[i]). Centring only conditions the Vandermonde matrix; the
// fitted curve is the same as in raw x.
func Fit(xs, ys []float64, degree int) (Poly, error) {
	n := len(xs)
	if n != len(ys) {
		return Poly{}, fmt.Errorf("fit: %d x values, %d y values", n, len(ys))
	}
	if degree < 0 || n < degree+1 {
		return Poly{}, fmt.Errorf("fit: %d points cannot determine a degree %d polynomial", n, degree)
	}

	lo, hi := xs[0], xs[0]
	sum := 0.0
	for _, x := range xs {
		sum += x
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	center := sum / float64(n)
	scale := (hi - lo) / 2
	if scale == 0 {
		scale = 1
	}

	X := mat.NewDense(n, degree+1, nil)
	for i, x := range xs {
		u := (x - center) / scale
		v := 1.0
		for j := 0; j <= degree; j++ {
			X.Set(i, j, v)
			v *= u
		}
	}
	y := mat.NewVecDense(n, append([]float64(nil), ys...))

	var qr mat.QR
	qr.Factorize(X)

	coeffs := mat.NewVecDense(degree+1, nil)
	if err := qr.SolveVecTo(coeffs, false, y); err != nil {
		return Poly{}, fmt.Errorf("fit: %w", err)
	}

	out := Poly{Coeffs: make([]float64, degree+1), Center: center, Scale: scale}
	for i := range out.Coeffs {
		out.Coeffs[i] = coeffs.AtVec(i)
	}
	return out, nil
}

// FitAndEvaluate fits a quadratic to the curve over the set's weights and
// evaluates it at weight.
func FitAndEvaluate(set CurveSet, curve Curve, weight float64) (float64, error) {
	p, err := Fit(set.Weights, curve.Values, 2)
	if err != nil {
		return 0, fmt.Errorf("curve %s: %w", curve.Name, err)
	}
	return p.Eval(weight), nil
}

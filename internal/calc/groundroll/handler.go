package groundroll

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"Told/internal/log"
)

// Form bounds on weight. The library itself accepts any weight.
const (
	MinFormWeight = 1000.0
	MaxFormWeight = 3000.0
)

// Request is the API shape of a query. Missing fields take the form defaults.
type Request struct {
	WeightLb      *float64 `json:"weight_lb"`
	OATC          *float64 `json:"oat_c"`
	ElevationFt   *float64 `json:"elevation_ft"`
	AltimeterInHg *float64 `json:"altimeter_inhg"`
	Strict        bool     `json:"strict"`
}

type Response struct {
	Result Result `json:"result"`
	Chart  Chart  `json:"chart"`
}

var ErrWeightBounds = fmt.Errorf("weight must be within [%.0f, %.0f] lb", MinFormWeight, MaxFormWeight)

// Resolve applies defaults and the form bounds.
func (r Request) Resolve() (Input, Options, error) {
	in := Input{
		WeightLb:      orDefault(r.WeightLb, DefaultWeight),
		OATC:          orDefault(r.OATC, DefaultOAT),
		ElevationFt:   orDefault(r.ElevationFt, DefaultElevation),
		AltimeterInHg: orDefault(r.AltimeterInHg, DefaultAltimeter),
	}
	if err := in.Validate(); err != nil {
		return Input{}, Options{}, err
	}
	if in.WeightLb < MinFormWeight || in.WeightLb > MaxFormWeight {
		return Input{}, Options{}, ErrWeightBounds
	}
	opts := Options{}
	if r.Strict {
		opts.Policy = PolicyStrict
	}
	return in, opts, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// RequestFromQuery reads a Request from URL query parameters.
func RequestFromQuery(r *http.Request) (Request, error) {
	q := r.URL.Query()
	var req Request
	fields := []struct {
		key string
		dst **float64
	}{
		{"weight", &req.WeightLb},
		{"oat_c", &req.OATC},
		{"elevation_ft", &req.ElevationFt},
		{"altimeter_inhg", &req.AltimeterInHg},
	}
	for _, f := range fields {
		s := q.Get(f.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Request{}, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = &v
	}
	req.Strict, _ = strconv.ParseBool(q.Get("strict"))
	return req, nil
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	in, opts, err := req.Resolve()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Calculate(in, opts)
	if err != nil {
		WriteCalcError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Response{Result: res, Chart: BuildChart(Reference, in.WeightLb, res)}); err != nil {
		log.Errorw("encode groundroll response failed", "error", err)
	}
}

// WriteCalcError maps a Resolve or Calculate error to a status code.
func WriteCalcError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrWeightBounds):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrOutOfRange), errors.Is(err, ErrNonFinite):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Errorw("groundroll calculation failed", "error", err)
		http.Error(w, "Calculation error", http.StatusInternalServerError)
	}
}

package render

import (
	"net/http"

	groundroll "Told/internal/calc/groundroll"
	"Told/internal/log"
)

type Handler struct{}

// PNG serves the ground roll chart for the query in the URL.
func (h *Handler) PNG(w http.ResponseWriter, r *http.Request) {
	req, err := groundroll.RequestFromQuery(r)
	if err != nil {
		http.Error(w, "Invalid query: "+err.Error(), http.StatusBadRequest)
		return
	}
	in, opts, err := req.Resolve()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := groundroll.Calculate(in, opts)
	if err != nil {
		groundroll.WriteCalcError(w, err)
		return
	}
	img, err := PNGBytes(groundroll.BuildChart(groundroll.Reference, in.WeightLb, res))
	if err != nil {
		log.Errorw("chart render failed", "error", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

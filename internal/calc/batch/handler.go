package batch

import (
	"encoding/json"
	"errors"
	"net/http"

	groundroll "Told/internal/calc/groundroll"
	"Told/internal/log"
)

type Handler struct{}

func (h *Handler) GroundRoll(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, groundroll.ErrOutOfRange) || errors.Is(err, groundroll.ErrNonFinite) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Errorw("encode batch response failed", "error", err)
	}
}

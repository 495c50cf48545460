package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	auth "Told/internal/auth"
	groundroll "Told/internal/calc/groundroll"
	"Told/internal/log"
	repo "Told/internal/repo"
)

// Handler renders takeoff reports. With Profiles set, an authenticated
// pilot's tail number and home field elevation fill fields the request
// leaves empty.
type Handler struct {
	Profiles repo.ProfileRepository
}

func (h *Handler) applyProfile(r *http.Request, in *Input) {
	if h.Profiles == nil {
		return
	}
	pilotID, ok := auth.PilotID(r.Context())
	if !ok {
		return
	}
	prof, err := h.Profiles.GetProfileByID(r.Context(), pilotID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			log.Warnw("load profile for report failed", "pilot", pilotID, "error", err)
		}
		return
	}
	if in.TailNumber == "" {
		in.TailNumber = prof.TailNumber
	}
	if in.Query.ElevationFt == nil && prof.HomeElevationFt != nil {
		elev := *prof.HomeElevationFt
		in.Query.ElevationFt = &elev
	}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if input.Pilot == "" {
		input.Pilot = auth.PilotLogin(r.Context())
	}
	h.applyProfile(r, &input)

	pdf, err := Build(input, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, groundroll.ErrWeightBounds), errors.Is(err, groundroll.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, groundroll.ErrOutOfRange), errors.Is(err, groundroll.ErrNonFinite):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			log.Errorw("report build failed", "error", err)
			http.Error(w, "Report generation error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"takeoff-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		log.Errorw("report output failed", "error", err)
	}
}

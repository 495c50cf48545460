package profile

import (
	auth "Told/internal/auth"
	repo "Told/internal/repo"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"Told/internal/log"
)

type ProfileHandler struct {
	Repo repo.ProfileRepository
}

type UpdateProfileRequest struct {
	TailNumber      string   `json:"tail_number"`
	HomeElevationFt *float64 `json:"home_elevation_ft"`
}

const maxTailNumber = 10

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	pilotID, ok := auth.PilotID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prof, err := h.Repo.GetProfileByID(r.Context(), pilotID)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorw("get profile failed", "pilot", pilotID, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prof)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	pilotID, ok := auth.PilotID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.TailNumber = strings.ToUpper(strings.TrimSpace(req.TailNumber))
	if len(req.TailNumber) > maxTailNumber {
		http.Error(w, "Tail number too long", http.StatusBadRequest)
		return
	}
	if e := req.HomeElevationFt; e != nil && (math.IsNaN(*e) || math.IsInf(*e, 0)) {
		http.Error(w, "Invalid home elevation", http.StatusBadRequest)
		return
	}

	err := h.Repo.UpdateProfile(r.Context(), pilotID, req.TailNumber, req.HomeElevationFt)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorw("update profile failed", "pilot", pilotID, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package importer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"Told/internal/log"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct{}

// GroundRoll accepts a workbook upload in the "file" form field. With
// ?format=xlsx the results come back as a workbook.
func (h *Handler) GroundRoll(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	reqs, skipped, err := ReadQueries(file)
	if errors.Is(err, ErrTooManyRows) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))
	res := Run(reqs, strict)
	res.Skipped += skipped

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=\"ground-roll.xlsx\"")
		if err := WriteWorkbook(w, res.Results); err != nil {
			log.Errorw("workbook export failed", "error", err)
			http.Error(w, "Export error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Errorw("encode import response failed", "error", err)
	}
}

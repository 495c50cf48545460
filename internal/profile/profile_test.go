package profile

import (
	auth "Told/internal/auth"
	repo "Told/internal/repo"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type memProfiles map[int]repo.Profile

func (m memProfiles) GetProfileByID(ctx context.Context, id int) (repo.Profile, error) {
	p, ok := m[id]
	if !ok {
		return repo.Profile{}, repo.ErrNotFound
	}
	return p, nil
}

func (m memProfiles) UpdateProfile(ctx context.Context, id int, tail string, elev *float64) error {
	p, ok := m[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.TailNumber, p.HomeElevationFt = tail, elev
	m[id] = p
	return nil
}

func request(method, body string, pilotID int) *http.Request {
	req := httptest.NewRequest(method, "/api/tools/profile", strings.NewReader(body))
	if pilotID != 0 {
		req = req.WithContext(auth.WithPilot(req.Context(), pilotID, "n123ab"))
	}
	return req
}

func TestProfileRoundTrip(t *testing.T) {
	store := memProfiles{7: {ID: 7, Login: "n123ab", Email: "pilot@example.com"}}
	h := &ProfileHandler{Repo: store}

	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, request(http.MethodPut, `{"tail_number":" n8312c ","home_elevation_ft":1350}`, 7))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.GetProfile(rec, request(http.MethodGet, "", 7))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: %d", rec.Code)
	}
	var got repo.Profile
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.TailNumber != "N8312C" || got.HomeElevationFt == nil || *got.HomeElevationFt != 1350 {
		t.Fatalf("profile: %+v", got)
	}
}

func TestProfileErrors(t *testing.T) {
	h := &ProfileHandler{Repo: memProfiles{7: {ID: 7}}}
	cases := []struct {
		name string
		do   func(http.ResponseWriter, *http.Request)
		req  *http.Request
		want int
	}{
		{"anonymous", h.GetProfile, request(http.MethodGet, "", 0), http.StatusUnauthorized},
		{"unknown pilot", h.GetProfile, request(http.MethodGet, "", 9), http.StatusNotFound},
		{"bad json", h.UpdateProfile, request(http.MethodPut, "{", 7), http.StatusBadRequest},
		{"long tail", h.UpdateProfile, request(http.MethodPut, `{"tail_number":"N1234567890"}`, 7), http.StatusBadRequest},
		{"update unknown", h.UpdateProfile, request(http.MethodPut, `{"tail_number":"N1"}`, 9), http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.do(rec, tc.req)
		if rec.Code != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, rec.Code, tc.want)
		}
	}
}

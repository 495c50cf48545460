package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type memRepo struct {
	nextID int
	pilots map[string]struct {
		id   int
		hash string
	}
}

func newMemRepo() *memRepo {
	return &memRepo{pilots: map[string]struct {
		id   int
		hash string
	}{}}
}

func (m *memRepo) CreatePilot(ctx context.Context, login, email, password string) (int, error) {
	if _, ok := m.pilots[login]; ok {
		return 0, errors.New("duplicate login")
	}
	m.nextID++
	m.pilots[login] = struct {
		id   int
		hash string
	}{m.nextID, password}
	return m.nextID, nil
}

func (m *memRepo) GetByLogin(ctx context.Context, login string) (int, string, error) {
	p, ok := m.pilots[login]
	if !ok {
		return 0, "", nil
	}
	return p.id, p.hash, nil
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no session cookie set")
	return nil
}

func TestRegisterLoginAndMiddleware(t *testing.T) {
	env := &Authenv{JWTkey: []byte("test-key"), Repo: newMemRepo()}

	rec := post(env.RegisterHandler, `{"login":"n123ab","email":"pilot@example.com","password":"warrior2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	if c := sessionCookie(t, rec); !c.HttpOnly || !c.Secure {
		t.Fatalf("cookie flags: %+v", c)
	}

	if rec := post(env.RegisterHandler, `{"login":"n123ab","email":"x@example.com","password":"warrior2"}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: %d", rec.Code)
	}
	if rec := post(env.RegisterHandler, `{"login":"short","email":"x@example.com","password":"123"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: %d", rec.Code)
	}
	if rec := post(env.AuthHandler, `{"login":"n123ab","password":"wrong-pass"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", rec.Code)
	}
	if rec := post(env.AuthHandler, `{"login":"nobody","password":"warrior2"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown login: %d", rec.Code)
	}

	rec = post(env.AuthHandler, `{"login":"n123ab","password":"warrior2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)

	var gotID int
	var gotLogin string
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = PilotID(r.Context())
		gotLogin = PilotLogin(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tools/groundroll/chart.png", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || gotID != 1 || gotLogin != "n123ab" {
		t.Fatalf("middleware: code=%d id=%d login=%q", rec.Code, gotID, gotLogin)
	}

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: %d", rec.Code)
	}
}

func TestMiddlewareRejectsForeignAndExpiredTokens(t *testing.T) {
	env := &Authenv{JWTkey: []byte("test-key"), Repo: newMemRepo()}
	other := &Authenv{JWTkey: []byte("other-key")}

	foreign, err := other.IssueToken(1, "n123ab", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	expired, err := env.IssueToken(1, "n123ab", time.Now().Add(-2*tokenTTL))
	if err != nil {
		t.Fatal(err)
	}

	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for name, tok := range map[string]string{"foreign": foreign, "expired": expired, "garbage": "not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s token: %d", name, rec.Code)
		}
	}
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 4)
	for _, addr := range []string{"10.0.0.1:5000", "10.0.0.1:5001", "10.0.0.1:5002", "10.0.0.2:5000"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	want := []int{200, 200, 429, 200}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes: got %v want %v", codes, want)
		}
	}
}

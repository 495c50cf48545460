package main

import (
	auth "Told/internal/auth"
	batch "Told/internal/calc/batch"
	densityalt "Told/internal/calc/densityalt"
	groundroll "Told/internal/calc/groundroll"
	importer "Told/internal/calc/importer"
	render "Told/internal/calc/render"
	report "Told/internal/calc/report"
	config "Told/internal/config"
	"Told/internal/log"
	profile "Told/internal/profile"
	repo "Told/internal/repo"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// NewHandler wraps the router so every request is logged, including
// preflights and unmatched routes.
func NewHandler(router *mux.Router) http.Handler {
	return log.Middleware(CORS(router))
}

// HandleList registers the API. db may be nil, in which case the tools are
// served without pilot accounts.
func HandleList(mux *mux.Router, cfg config.Config, db *sql.DB) {
	limiter := auth.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	tools := api.PathPrefix("/tools").Subrouter()
	reportH := &report.Handler{}
	if db != nil {
		pilots := repo.NewPostgresPilotDB(db)
		authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: pilots, Insecure: !cfg.TLS()}
		api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
		api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
		tools.Use(authEnv.AuthMiddleware)
		reportH.Profiles = pilots

		profileH := &profile.ProfileHandler{Repo: pilots}
		tools.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
		tools.HandleFunc("/profile", profileH.UpdateProfile).Methods("PUT")
	}

	densityH := &densityalt.Handler{}
	groundrollH := &groundroll.Handler{}
	chartH := &render.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}

	tools.HandleFunc("/densityalt/calc", densityH.Calc).Methods("POST")
	tools.HandleFunc("/groundroll/calc", groundrollH.Calc).Methods("POST")
	tools.HandleFunc("/groundroll/chart.png", chartH.PNG).Methods("GET")
	tools.HandleFunc("/groundroll/batch", batchH.GroundRoll).Methods("POST")
	tools.HandleFunc("/groundroll/import", importH.GroundRoll).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := log.Init(cfg.Debug); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var db *sql.DB
	if cfg.AuthEnabled() {
		db, err = repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
	} else {
		log.Warnw("TOKEN_KEY or DATABASE_URL not set, tools are served without authentication")
	}

	router := mux.NewRouter()
	HandleList(router, cfg, db)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infow("starting server", "addr", cfg.Addr, "tls", cfg.TLS(), "auth", db != nil)
		var serveErr error
		if cfg.TLS() {
			serveErr = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			serveErr = server.ListenAndServe()
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Errorw("server error", "error", serveErr)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	wg.Wait()
	log.Info("server stopped")
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

type Repository interface {
	CreatePilot(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

// Profile is what a pilot stores beside the login: the aircraft and the
// home field elevation. Takeoff reports use them for fields a request
// leaves empty.
type Profile struct {
	ID              int       `json:"id"`
	Login           string    `json:"login"`
	Email           string    `json:"email"`
	TailNumber      string    `json:"tail_number"`
	HomeElevationFt *float64  `json:"home_elevation_ft"`
	CreatedAt       time.Time `json:"created_at"`
}

type ProfileRepository interface {
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, tailNumber string, homeElevationFt *float64) error
}

var ErrNotFound = errors.New("not found")

type PostgresPilotRepository struct {
	db *sql.DB
}

func NewPostgresPilotDB(db *sql.DB) *PostgresPilotRepository {
	return &PostgresPilotRepository{db: db}
}

var schema = []string{`CREATE TABLE IF NOT EXISTS pilots (
	id SERIAL PRIMARY KEY,
	login TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password TEXT NOT NULL,
	tail_number TEXT NOT NULL DEFAULT '',
	home_elevation_ft DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`ALTER TABLE pilots ADD COLUMN IF NOT EXISTS tail_number TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE pilots ADD COLUMN IF NOT EXISTS home_elevation_ft DOUBLE PRECISION`,
}

// withSSLMode requires TLS to the database unless the URL says otherwise.
func withSSLMode(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if strings.Contains(connStr, "?") {
			return connStr + "&sslmode=require"
		}
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}

// Open connects to Postgres, checks the connection and creates the pilots
// table if needed.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	if connStr == "" {
		return nil, errors.New("empty database URL")
	}
	db, err := sql.Open("postgres", withSSLMode(connStr))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return db, nil
}

func (r *PostgresPilotRepository) CreatePilot(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO pilots (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetByLogin returns id 0 and no error when the login is unknown.
func (r *PostgresPilotRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM pilots WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresPilotRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	var elev sql.NullFloat64
	query := "SELECT id, login, email, tail_number, home_elevation_ft, created_at FROM pilots WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Login, &p.Email, &p.TailNumber, &elev, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	if elev.Valid {
		p.HomeElevationFt = &elev.Float64
	}
	return p, nil
}

func (r *PostgresPilotRepository) UpdateProfile(ctx context.Context, id int, tailNumber string, homeElevationFt *float64) error {
	var elev sql.NullFloat64
	if homeElevationFt != nil {
		elev = sql.NullFloat64{Float64: *homeElevationFt, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, "UPDATE pilots SET tail_number=$2, home_elevation_ft=$3 WHERE id=$1", id, tailNumber, elev)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

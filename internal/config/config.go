package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	TokenKey    string
	DatabaseURL string
	Debug       bool
	RateLimit   rate.Limit
	RateBurst   int
	BotToken    string
}

// AuthEnabled reports whether pilot accounts are configured.
func (c Config) AuthEnabled() bool {
	return c.TokenKey != "" && c.DatabaseURL != ""
}

// TLS reports whether the server should serve HTTPS.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads the given .env files (".env" if none) into the environment and
// builds a Config from it. Missing files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	c := Config{
		Addr:        getenv("ADDR", ":443"),
		TLSCert:     getenv("TLS_CERT", "server.crt"),
		TLSKey:      getenv("TLS_KEY", "server.key"),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		BotToken:    os.Getenv("TOKEN_BOT"),
	}

	var err error
	if c.Debug, err = parseBool("DEBUG", false); err != nil {
		return Config{}, err
	}
	limit, err := parseFloat("RATE_LIMIT", 1)
	if err != nil {
		return Config{}, err
	}
	c.RateLimit = rate.Limit(limit)
	if c.RateBurst, err = parseInt("RATE_BURST", 3); err != nil {
		return Config{}, err
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT and RATE_BURST must be positive")
	}
	return c, nil
}

// getenv distinguishes unset from set-but-empty, so TLS_CERT= disables TLS.
func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

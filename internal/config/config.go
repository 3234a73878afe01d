package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration values.
type Config struct {
	Secret      string
	DatabaseDSN string
	HTTPPort    string
	CORSOrigins []string
}

// Load reads configuration from environment variables with reasonable
// defaults. SECRET must match the POS backend so its bearer tokens validate
// here; DATABASE_DSN points at the SQLite file the POS backend writes.
func Load() Config {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:warungku.sqlite"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8000"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8000", port)
		port = "8000"
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	var allowed []string
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowed = append(allowed, trimmed)
		}
	}

	return Config{Secret: secret, DatabaseDSN: dsn, HTTPPort: port, CORSOrigins: allowed}
}

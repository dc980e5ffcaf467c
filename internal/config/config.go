// Package config reads process settings from the environment, after
// loading any .env and .env.local files in the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"librarycatalog/internal/platform/logger"
)

// ErrMissingEnv is returned when a variable a command cannot run without is
// unset.
var ErrMissingEnv = errors.New("missing required environment variable")

type Config struct {
	Addr           string
	DatabaseDSN    string
	LogPath        string
	LogLevel       string
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	EnableHSTS     bool
	MigrationsDir  string
	TrustProxy     bool
}

// LoadEnvFiles loads .env files without overriding variables already set
// by the runtime.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the configuration. An empty DB_DSN means snapshots are kept
// in memory only.
func Load() (Config, error) {
	LoadEnvFiles()

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	return Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		DatabaseDSN:    os.Getenv("DB_DSN"),
		LogPath:        getEnv("CATALOG_LOG_PATH", logger.DefaultSinkPath),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		EnableHSTS:     os.Getenv("ENABLE_HSTS") == "true",
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "db/migrations"),
		TrustProxy:     os.Getenv("TRUST_PROXY") == "true",
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// RequireDSN returns the database DSN for commands that only work against
// Postgres.
func (c Config) RequireDSN() (string, error) {
	if c.DatabaseDSN == "" {
		return "", fmt.Errorf("%w: DB_DSN", ErrMissingEnv)
	}
	return c.DatabaseDSN, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RedactDSN hides the credentials of a connection string for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}

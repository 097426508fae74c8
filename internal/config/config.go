package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	SessionTTL  time.Duration
	// SecureCookies marks the session cookie Secure; enable when serving
	// over TLS.
	SecureCookies bool
	// RejectNegativePayments turns negative payment amounts into a request
	// error instead of letting the balance clamp absorb them.
	RejectNegativePayments bool
	CORSOrigins            []string
}

// Load reads configuration from the environment and performs minimal
// validation. JWT_SECRET is deliberately not required here: login reports
// the misconfiguration per request instead of the process failing to boot.
func Load() (Config, error) {
	cfg := Config{
		Port:                   fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:            strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:              strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SecureCookies:          boolEnv("COOKIE_SECURE"),
		RejectNegativePayments: boolEnv("REJECT_NEGATIVE_PAYMENTS"),
		CORSOrigins:            parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	hours := fallback(os.Getenv("SESSION_TTL_HOURS"), "168")
	if ttlHours, err := strconv.Atoi(hours); err == nil && ttlHours > 0 {
		cfg.SessionTTL = time.Duration(ttlHours) * time.Hour
	} else {
		cfg.SessionTTL = 168 * time.Hour
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "JWT_SECRET", "SESSION_TTL_HOURS",
		"COOKIE_SECURE", "REJECT_NEGATIVE_PAYMENTS", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/loanbook")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 168*time.Hour, cfg.SessionTTL)
	require.False(t, cfg.SecureCookies)
	require.False(t, cfg.RejectNegativePayments)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
}

func TestLoadSecretIsOptional(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/loanbook")

	// Startup succeeds without a secret; login reports the misconfiguration.
	cfg, err := Load()
	require.NoError(t, err)
	require.Empty(t, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/loanbook")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_TTL_HOURS", "24")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REJECT_NEGATIVE_PAYMENTS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.True(t, cfg.SecureCookies)
	require.True(t, cfg.RejectNegativePayments)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadBadTTLFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/loanbook")
	t.Setenv("SESSION_TTL_HOURS", "zero")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 168*time.Hour, cfg.SessionTTL)
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travelvibe-api/pkg/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ORIGINS", "GEMINI_MODEL", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SESSION_TTL", "RATE_LIMIT_PER_SECOND",
		"RATE_LIMIT_BURST", "MAX_BODY_BYTES", "METRICS_ENABLED", "GEOLOCATION_TIMEOUT", "SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	require.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.CORSOrigins)
	require.Equal(t, 2*time.Hour, cfg.Server.SessionTTL)
	require.Equal(t, 10*time.Second, cfg.Geolocation.Timeout)
	require.Equal(t, int64(64<<10), cfg.Server.MaxBodyBytes)
	require.True(t, cfg.Observability.MetricsEnabled)
	require.False(t, cfg.Database.Enabled())
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/travel")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("RATE_LIMIT_PER_SECOND", "0")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	require.True(t, cfg.Database.Enabled())
	require.Equal(t, "postgres://u:p@db:5432/travel", cfg.Database.DSN())
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.CORSOrigins)
	require.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	require.Equal(t, 0, cfg.Server.RateLimitPerSecond)
	require.False(t, cfg.Observability.MetricsEnabled)
}

func TestLoad_missingRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "GEMINI_API_KEY")
	require.ErrorContains(t, err, "SESSION_SECRET")
}

func TestLoad_malformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SESSION_SECRET", "short")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("RATE_LIMIT_BURST", "ten")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "SESSION_SECRET must be at least 32 bytes")
	require.ErrorContains(t, err, "SESSION_TTL")
	require.ErrorContains(t, err, "RATE_LIMIT_BURST")
}

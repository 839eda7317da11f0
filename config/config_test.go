package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/ErlanBelekov/finance-tracker/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "config-test-secret-at-least-32-chars"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/fintrack")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", testSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "log", cfg.EmailProvider)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"short jwt secret", map[string]string{"JWT_SECRET": "too-short"}},
		{"unknown env", map[string]string{"ENV": "dev"}},
		{"otp ttl too long", map[string]string{"OTP_TTL": "2h"}},
		{"log email outside local", map[string]string{"ENV": "production"}},
		{"resend without key", map[string]string{"EMAIL_PROVIDER": "resend", "EMAIL_FROM": "noreply@example.com"}},
		{"smtp without host", map[string]string{"EMAIL_PROVIDER": "smtp", "EMAIL_FROM": "noreply@example.com"}},
		{"resend without from", map[string]string{"EMAIL_PROVIDER": "resend", "RESEND_API_KEY": "re_123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProductionWithResend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("EMAIL_PROVIDER", "resend")
	t.Setenv("EMAIL_FROM", "noreply@example.com")
	t.Setenv("RESEND_API_KEY", "re_123")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "resend", cfg.EmailProvider)
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg := &config.Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}

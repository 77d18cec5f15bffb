package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "DB_NAME", "ACCESS_TOKEN_TTL", "REQUEST_TIMEOUT", "ALLOWED_ORIGINS", "SMTP_PORT", "SMTP_HOST"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "fazenda", cfg.DBName)
	require.Equal(t, 720*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Equal(t, 587, cfg.SMTP.Port)
	require.False(t, cfg.SMTP.Enabled())
	require.Error(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("ACCESS_TOKEN_TTL", "60")
	t.Setenv("REQUEST_TIMEOUT", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://fazenda.example, ,https://admin.fazenda.example")
	t.Setenv("UPLOAD_BASE_URL", "https://cdn.fazenda.example/")
	t.Setenv("SMTP_HOST", "smtp.fazenda.example")
	t.Setenv("SMTP_FROM", "no-reply@fazenda.example")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, []string{"https://fazenda.example", "https://admin.fazenda.example"}, cfg.AllowedOrigins)
	require.Equal(t, "https://cdn.fazenda.example", cfg.UploadBaseURL)
	require.True(t, cfg.SMTP.Enabled())
}

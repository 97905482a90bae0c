package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEnvFile(t *testing.T, content string) {
	t.Helper()
	orig := envFile
	t.Cleanup(func() { envFile = orig })

	envFile = filepath.Join(t.TempDir(), ".env")
	if content != "" {
		require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	}
}

func TestParseEnv_Variables(t *testing.T) {
	withEnvFile(t, "")

	t.Setenv("ASTRO_HTTP_ADDR", ":9999")
	t.Setenv("ASTRO_DB_DRIVER", "postgres")
	t.Setenv("ASTRO_DATABASE_DSN", "postgres://env")
	t.Setenv("ASTRO_SECRET_KEY", "env-secret")
	t.Setenv("ASTRO_SESSION_VALIDITY", "45m")
	t.Setenv("ASTRO_RESET_TOKEN_TTL", "10m")
	t.Setenv("ASTRO_RESET_TOKEN_IN_RESPONSE", "true")
	t.Setenv("ASTRO_MAILGUN_DOMAIN", "mg.example.com")
	t.Setenv("ASTRO_MAILGUN_API_KEY", "key")
	t.Setenv("ASTRO_MAILGUN_SENDER", "no-reply@example.com")
	t.Setenv("ASTRO_LOG_BACKEND", "logrus")
	t.Setenv("ASTRO_GIN_MODE", "test")

	cfg := defaultsConfig()
	parseEnv(cfg)

	assert.Equal(t, &Config{
		EndpointAddrHTTP:           ":9999",
		DatabaseDriver:             "postgres",
		DatabaseDSN:                "postgres://env",
		SecretKey:                  "env-secret",
		SessionValidityDuration:    45 * time.Minute,
		ResetTokenValidityDuration: 10 * time.Minute,
		ResetTokenInResponse:       true,
		MailgunDomain:              "mg.example.com",
		MailgunAPIKey:              "key",
		MailgunSender:              "no-reply@example.com",
		LogBackend:                 "logrus",
		GinMode:                    "test",
	}, cfg)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	withEnvFile(t, "ASTRO_SECRET_KEY_FROM_FILE=x\nASTRO_HTTP_ADDR=:7777\nASTRO_LOG_BACKEND=logrus\n")
	t.Setenv("ASTRO_LOG_BACKEND", "slog")
	t.Cleanup(func() {
		_ = os.Unsetenv("ASTRO_HTTP_ADDR")
		_ = os.Unsetenv("ASTRO_SECRET_KEY_FROM_FILE")
	})

	cfg := defaultsConfig()
	parseEnv(cfg)

	assert.Equal(t, ":7777", cfg.EndpointAddrHTTP)
	assert.Equal(t, "slog", cfg.LogBackend, "process env wins over .env")
}

func TestParseEnv_Malformed(t *testing.T) {
	withEnvFile(t, "")

	t.Setenv("ASTRO_SESSION_VALIDITY", "forever")
	require.Panics(t, func() { parseEnv(defaultsConfig()) })

	t.Setenv("ASTRO_SESSION_VALIDITY", "")
	t.Setenv("ASTRO_RESET_TOKEN_IN_RESPONSE", "maybe")
	require.Panics(t, func() { parseEnv(defaultsConfig()) })
}

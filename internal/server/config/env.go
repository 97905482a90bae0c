package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded before reading the environment when it exists. Variables
// already set in the process environment win over the file.
var envFile = ".env"

// parseEnv overlays config with ASTRO_* environment variables. Malformed
// durations or booleans panic.
func parseEnv(config *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookupString("ASTRO_HTTP_ADDR", &config.EndpointAddrHTTP)
	lookupString("ASTRO_DB_DRIVER", &config.DatabaseDriver)
	lookupString("ASTRO_DATABASE_DSN", &config.DatabaseDSN)
	lookupString("ASTRO_SECRET_KEY", &config.SecretKey)
	lookupDuration("ASTRO_SESSION_VALIDITY", &config.SessionValidityDuration)
	lookupDuration("ASTRO_RESET_TOKEN_TTL", &config.ResetTokenValidityDuration)
	lookupBool("ASTRO_RESET_TOKEN_IN_RESPONSE", &config.ResetTokenInResponse)
	lookupString("ASTRO_MAILGUN_DOMAIN", &config.MailgunDomain)
	lookupString("ASTRO_MAILGUN_API_KEY", &config.MailgunAPIKey)
	lookupString("ASTRO_MAILGUN_SENDER", &config.MailgunSender)
	lookupString("ASTRO_LOG_BACKEND", &config.LogBackend)
	lookupString("ASTRO_GIN_MODE", &config.GinMode)
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}

func lookupBool(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(err)
	}
	*dst = b
}

// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the astrochat server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDriver: "postgres" or "sqlite".
//   - DatabaseDSN: DSN for the selected driver (pgx URL or SQLite file path).
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use test defaults in prod.
//   - SessionValidityDuration: lifetime of a login session and its bearer token.
//   - ResetTokenValidityDuration: lifetime of a password reset token.
//   - ResetTokenInResponse: return reset tokens in the API response (demo mode).
//   - MailgunDomain / MailgunAPIKey / MailgunSender: reset token delivery; unset disables mail.
//   - LogBackend: "slog" or "logrus".
//   - GinMode: gin.DebugMode, gin.ReleaseMode or gin.TestMode.
type Config struct {
	EndpointAddrHTTP           string
	DatabaseDriver             string
	DatabaseDSN                string
	SecretKey                  string
	SessionValidityDuration    time.Duration
	ResetTokenValidityDuration time.Duration
	ResetTokenInResponse       bool
	MailgunDomain              string
	MailgunAPIKey              string
	MailgunSender              string
	LogBackend                 string
	GinMode                    string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "astrochat.db"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 24 * time.Hour
	c.ResetTokenValidityDuration = time.Hour
	c.ResetTokenInResponse = false
	c.LogBackend = "slog"
	c.GinMode = "release"
}

// MailEnabled reports whether all Mailgun settings are present.
func (c *Config) MailEnabled() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != "" && c.MailgunSender != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

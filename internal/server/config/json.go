package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/astrochat/internal/flagx"
	"github.com/dmitrijs2005/astrochat/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "1h" strings
// or integer nanoseconds. Pointer fields distinguish "absent" from zero.
type JsonConfig struct {
	EndpointAddrHTTP           string          `json:"endpoint_addr_http"`
	DatabaseDriver             string          `json:"database_driver"`
	DatabaseDSN                string          `json:"database_dsn"`
	SecretKey                  string          `json:"secret_key"`
	SessionValidityDuration    *timex.Duration `json:"session_validity_duration"`
	ResetTokenValidityDuration *timex.Duration `json:"reset_token_validity_duration"`
	ResetTokenInResponse       *bool           `json:"reset_token_in_response"`
	MailgunDomain              string          `json:"mailgun_domain"`
	MailgunAPIKey              string          `json:"mailgun_api_key"`
	MailgunSender              string          `json:"mailgun_sender"`
	LogBackend                 string          `json:"log_backend"`
	GinMode                    string          `json:"gin_mode"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Keys missing from the file keep their current
// values. Read or decode failures panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.ResetTokenValidityDuration != nil {
		config.ResetTokenValidityDuration = c.ResetTokenValidityDuration.Duration
	}
	if c.ResetTokenInResponse != nil {
		config.ResetTokenInResponse = *c.ResetTokenInResponse
	}
	setString(&config.MailgunDomain, c.MailgunDomain)
	setString(&config.MailgunAPIKey, c.MailgunAPIKey)
	setString(&config.MailgunSender, c.MailgunSender)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.GinMode, c.GinMode)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/forwardtrading/authsvc/internal/flagx"
	"github.com/forwardtrading/authsvc/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr         string         `json:"endpoint_addr"`
	DatabaseDSN          string         `json:"database_dsn"`
	SecretKey            string         `json:"secret_key"`
	SessionTokenTTL      timex.Duration `json:"session_token_ttl"`
	VerificationTokenTTL timex.Duration `json:"verification_token_ttl"`
	ResetTokenTTL        timex.Duration `json:"reset_token_ttl"`
	LoginFailureDelay    timex.Duration `json:"login_failure_delay"`
	RequireVerifiedEmail bool           `json:"require_verified_email"`
	Domain               string         `json:"domain"`
	SMTPHost             string         `json:"smtp_host"`
	SMTPPort             int            `json:"smtp_port"`
	SMTPUsername         string         `json:"smtp_username"`
	SMTPPassword         string         `json:"smtp_password"`
	SMTPFrom             string         `json:"smtp_from"`
	MailQueueSize        int            `json:"mail_queue_size"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file path is found, parseJson attempts to read and unmarshal it
// into a JsonConfig. The resulting values are copied into the target Config.
// If the file cannot be read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionTokenTTL = time.Duration(c.SessionTokenTTL.Duration)
	config.VerificationTokenTTL = time.Duration(c.VerificationTokenTTL.Duration)
	config.ResetTokenTTL = time.Duration(c.ResetTokenTTL.Duration)
	config.LoginFailureDelay = time.Duration(c.LoginFailureDelay.Duration)
	config.RequireVerifiedEmail = c.RequireVerifiedEmail
	config.Domain = c.Domain
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUsername = c.SMTPUsername
	config.SMTPPassword = c.SMTPPassword
	config.SMTPFrom = c.SMTPFrom
	config.MailQueueSize = c.MailQueueSize
}

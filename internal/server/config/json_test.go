package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr":          "www.example:9000",
		"database_dsn":           "users.db",
		"secret_key":             "my_secret_key",
		"session_token_ttl":      "30m",
		"verification_token_ttl": "24h",
		"reset_token_ttl":        "1h",
		"login_failure_delay":    "500ms",
		"require_verified_email": true,
		"domain":                 "https://ft.example",
		"smtp_host":              "smtp.example",
		"smtp_port":              587,
		"smtp_username":          "user",
		"smtp_password":          "password",
		"smtp_from":              "noreply@ft.example",
		"mail_queue_size":        16,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
		assert.Equal(t, "users.db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 30*time.Minute, cfg.SessionTokenTTL)
		assert.Equal(t, 24*time.Hour, cfg.VerificationTokenTTL)
		assert.Equal(t, 1*time.Hour, cfg.ResetTokenTTL)
		assert.Equal(t, 500*time.Millisecond, cfg.LoginFailureDelay)
		assert.True(t, cfg.RequireVerifiedEmail)
		assert.Equal(t, "https://ft.example", cfg.Domain)
		assert.Equal(t, "smtp.example", cfg.SMTPHost)
		assert.Equal(t, 587, cfg.SMTPPort)
		assert.Equal(t, "user", cfg.SMTPUsername)
		assert.Equal(t, "password", cfg.SMTPPassword)
		assert.Equal(t, "noreply@ft.example", cfg.SMTPFrom)
		assert.Equal(t, 16, cfg.MailQueueSize)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		before := *cfg
		parseJson(cfg)

		assert.Equal(t, before, *cfg)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "absent.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("invalid json panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

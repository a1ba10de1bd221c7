package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
			"-t", "15", "-e", "1440", "-r", "60", "-w", "250", "-k",
			"-o", "https://ft.example", "-b", "smtp.example", "-g", "587",
			"-u", "user", "-p", "password", "-f", "noreply@ft.example", "-q", "32",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddr:         "127.0.0.1:9090",
				DatabaseDSN:          "db",
				SecretKey:            "secret",
				SessionTokenTTL:      15 * time.Minute,
				VerificationTokenTTL: 1440 * time.Minute,
				ResetTokenTTL:        60 * time.Minute,
				LoginFailureDelay:    250 * time.Millisecond,
				RequireVerifiedEmail: true,
				Domain:               "https://ft.example",
				SMTPHost:             "smtp.example",
				SMTPPort:             587,
				SMTPUsername:         "user",
				SMTPPassword:         "password",
				SMTPFrom:             "noreply@ft.example",
				MailQueueSize:        32,
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

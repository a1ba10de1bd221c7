package config

import (
	"flag"
	"os"
	"time"

	"github.com/forwardtrading/authsvc/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-e int      email verification token validity, minutes
//	-r int      password reset token validity, minutes
//	-w int      login failure delay, milliseconds
//	-k          require a verified email to log in
//	-o string   public domain for mail links
//	-b string   SMTP host
//	-g int      SMTP port
//	-u string   SMTP username
//	-p string   SMTP password
//	-f string   mail From address
//	-q int      mail dispatch queue size
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers (minutes or milliseconds) and
//     then converted to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-e", "-r", "-w", "-k", "-o", "-b", "-g", "-u", "-p", "-f", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionTokenTTL := fs.Int("t", int(config.SessionTokenTTL.Minutes()), "session_token_ttl (in minutes)")
	verificationTokenTTL := fs.Int("e", int(config.VerificationTokenTTL.Minutes()), "verification_token_ttl (in minutes)")
	resetTokenTTL := fs.Int("r", int(config.ResetTokenTTL.Minutes()), "reset_token_ttl (in minutes)")
	loginFailureDelay := fs.Int("w", int(config.LoginFailureDelay.Milliseconds()), "login_failure_delay (in milliseconds)")

	fs.BoolVar(&config.RequireVerifiedEmail, "k", config.RequireVerifiedEmail, "require verified email to log in")
	fs.StringVar(&config.Domain, "o", config.Domain, "public domain for mail links")
	fs.StringVar(&config.SMTPHost, "b", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "g", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUsername, "u", config.SMTPUsername, "SMTP username")
	fs.StringVar(&config.SMTPPassword, "p", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.SMTPFrom, "f", config.SMTPFrom, "mail From address")
	fs.IntVar(&config.MailQueueSize, "q", config.MailQueueSize, "mail dispatch queue size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTokenTTL = time.Duration(*sessionTokenTTL) * time.Minute
	config.VerificationTokenTTL = time.Duration(*verificationTokenTTL) * time.Minute
	config.ResetTokenTTL = time.Duration(*resetTokenTTL) * time.Minute
	config.LoginFailureDelay = time.Duration(*loginFailureDelay) * time.Millisecond
}

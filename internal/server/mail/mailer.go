// Package mail renders and delivers account emails (verification links,
// password reset links) over SMTP. Delivery is decoupled from the request
// path by Dispatcher, an in-process task queue.
package mail

import (
	"fmt"
	"net"
	"net/smtp"
	"net/url"
	"strconv"

	"github.com/jordan-wright/email"
)

// SMTPConfig holds the outbound mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer delivers the two account emails. Implementations are synchronous;
// callers that must not block go through Dispatcher.
type Mailer interface {
	SendVerification(to, login, token string) error
	SendPasswordReset(to, token string) error
}

// SMTPMailer sends HTML mail via plain-auth SMTP. Domain is the public base
// URL embedded into the links, e.g. "https://example.com".
type SMTPMailer struct {
	cfg    SMTPConfig
	domain string
}

func NewSMTPMailer(cfg SMTPConfig, domain string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, domain: domain}
}

func (m *SMTPMailer) SendVerification(to, login, token string) error {
	link := fmt.Sprintf("%s/v1/auth/verify-email?token=%s", m.domain, url.QueryEscape(token))
	body, err := renderVerification(login, link)
	if err != nil {
		return err
	}
	return m.send(to, "Confirm your email", body)
}

func (m *SMTPMailer) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/v1/auth/password-reset/confirm?token=%s", m.domain, url.QueryEscape(token))
	body, err := renderPasswordReset(link)
	if err != nil {
		return err
	}
	return m.send(to, "Password reset", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(body)

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return e.Send(addr, auth)
}

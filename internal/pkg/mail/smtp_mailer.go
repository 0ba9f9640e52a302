package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/socialsociety/SocialSociety/internal/pkg/env"
)

// Mailer sends emails via an SMTP relay. Configuration is injected at
// construction; delivery is best-effort and never blocks a payment outcome.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a mailer with explicit SMTP configuration.
func NewMailer(host, port, username, password, sender string) *Mailer {
	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP sender not set, using default sender: %s", sender)
	}
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Sender:   sender,
		send:     smtp.SendMail,
	}
}

// NewMailerFromEnv creates a mailer from SMTP_* environment configuration.
func NewMailerFromEnv() *Mailer {
	return NewMailer(
		env.GetEnv("SMTP_HOST", ""),
		env.GetEnv("SMTP_PORT", "587"),
		env.GetEnv("SMTP_USER", ""),
		env.GetEnv("SMTP_PASS", ""),
		env.GetEnv("SMTP_SENDER", env.GetEnv("SMTP_USER", "")),
	)
}

// Send delivers one message. HTML selects the content type.
func (m *Mailer) Send(to, subject, body string, html bool) error {
	var auth smtp.Auth
	if m.Username != "" && m.Password != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)

	contentType := "text/plain"
	if html {
		contentType = "text/html"
	}
	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", m.Sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			fmt.Sprintf("Content-Type: %s; charset=UTF-8\r\n\r\n", contentType) +
			body,
	)

	err := m.send(addr, auth, m.Sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

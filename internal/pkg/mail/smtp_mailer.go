package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/cactilog/cactilog/internal/pkg/env"
)

// Configured reports whether an SMTP provider is set up. Notifications are
// advisory; callers treat an unconfigured mailer as a skipped send.
func Configured() bool {
	return env.GetEnv("SMTP_HOST", "") != "" && env.GetEnv("SMTP_PORT", "") != ""
}

// WarnIfUnconfigured logs a startup warning when no mail provider is set.
// Report notifications will be skipped until SMTP_HOST/SMTP_PORT are set.
func WarnIfUnconfigured() {
	if !Configured() {
		log.Println("Warning: SMTP is not configured; report notification mails will be skipped")
	}
}

// SendMail sends an HTML mail via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	}
	return err
}

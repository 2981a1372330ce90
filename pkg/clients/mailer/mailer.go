package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// Mailer defines the interface for sending notification email
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	smtpHost string
	smtpPort string
	username string
	password string
}

// NewSMTPMailer creates a mailer that delivers over implicit-TLS SMTP
func NewSMTPMailer(host, port, user, pass string) Mailer {
	if port == "" {
		port = "465"
	}
	return &smtpMailer{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	from := m.username
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" + // required for HTML
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := m.smtpHost + ":" + m.smtpPort

	// Implicit TLS for port 465
	tlsConfig := &tls.Config{
		ServerName: m.smtpHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("error connecting to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.smtpHost)
	if err != nil {
		return fmt.Errorf("error creating SMTP client: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("error authenticating with SMTP server: %w", err)
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

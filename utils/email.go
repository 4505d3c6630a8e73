package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SMTPSender sends notification email through a plain-auth SMTP relay.
// It satisfies the workflow.EmailSender interface.
type SMTPSender struct {
	From     string
	Password string
	Host     string
	Port     string
}

// NewSMTPSenderFromEnv reads the mail configuration from the
// environment: EMAIL_FROM, EMAIL_PASSWORD, SMTP_HOST, SMTP_PORT.
func NewSMTPSenderFromEnv() *SMTPSender {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &SMTPSender{
		From:     os.Getenv("EMAIL_FROM"),
		Password: os.Getenv("EMAIL_PASSWORD"),
		Host:     host,
		Port:     port,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	if s.Password == "" {
		return fmt.Errorf("EMAIL_PASSWORD is not set")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + s.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)

	if err := smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

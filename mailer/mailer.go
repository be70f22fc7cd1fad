// Package mailer sends the contact-form email. There is deliberately no
// queueing or retry here; a failed send surfaces to the caller.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jrsteele09/go-blog-server/internal/config"
	"github.com/pkg/errors"
)

type Mailer interface {
	SendContact(fromName, fromEmail, message string) error
}

type SMTPMailer struct {
	config config.EnvConfig
}

func NewSMTPMailer(cfg config.EnvConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func (m *SMTPMailer) SendContact(fromName, fromEmail, message string) error {
	account := m.config.GetSmtpAccount()
	recipient := m.config.GetSmtpRecipient()
	addr := m.config.GetSmtpHost() + ":" + m.config.GetSmtpPort()

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Contact from %s <%s>\r\n\r\n%s\r\n",
		account, recipient, fromName, fromEmail, message)

	auth := smtp.PlainAuth("", account, m.config.GetSmtpPassword(), m.config.GetSmtpHost())
	if err := smtp.SendMail(addr, auth, account, []string{recipient}, []byte(body)); err != nil {
		return errors.Wrap(err, "[SendContact] smtp.SendMail")
	}
	return nil
}

// NoopMailer is used in tests and when SMTP is not configured.
type NoopMailer struct {
	Sent int
}

func (m *NoopMailer) SendContact(fromName, fromEmail, message string) error {
	m.Sent++
	return nil
}

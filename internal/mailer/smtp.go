package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
}

// SMTPMailer dials per message; the relay sends at most one mail per request.
type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)}
}

func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	msg, err := buildMessage(e)
	if err != nil {
		return err
	}
	// gomail has no context support; honour cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildMessage(e Email) (*gomail.Message, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	m := gomail.NewMessage()
	if e.FromName != "" {
		m.SetAddressHeader("From", e.From, e.FromName)
	} else {
		m.SetHeader("From", e.From)
	}
	m.SetHeader("To", e.To...)
	m.SetHeader("Subject", e.Subject)

	switch {
	case e.TextBody != "" && e.HTMLBody != "":
		m.SetBody("text/plain", e.TextBody)
		m.AddAlternative("text/html", e.HTMLBody)
	case e.HTMLBody != "":
		m.SetBody("text/html", e.HTMLBody)
	default:
		m.SetBody("text/plain", e.TextBody)
	}
	return m, nil
}

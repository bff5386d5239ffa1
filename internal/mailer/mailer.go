package mailer

import (
	"context"
	"errors"
)

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string // optional display name
	From     string

	To []string

	Subject  string
	HTMLBody string
	TextBody string
}

func (e Email) validate() error {
	switch {
	case len(e.To) == 0:
		return errors.New("mailer: at least one recipient required")
	case e.From == "":
		return errors.New("mailer: from address required")
	case e.Subject == "":
		return errors.New("mailer: subject required")
	case e.HTMLBody == "" && e.TextBody == "":
		return errors.New("mailer: html or text body required")
	}
	return nil
}

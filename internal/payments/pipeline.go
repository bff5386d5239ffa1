package payments

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/ariefcatur/go-course-payments/internal/mailer"
)

var downloadMail = template.Must(template.New("download").Parse(
	`<p>Dear {{.Name}},</p>
<p>Thank you for your payment. Click below to download:</p>
<a href="{{.Link}}" target="_blank">Download Notes</a>
`))

// Pipeline confirms a completed payment: verify, record, resolve link, mail.
// Each step gates the next; nothing is retried and replays are not deduplicated.
type Pipeline struct {
	Secret string
	Ledger LedgerSink
	Links  LinkTable
	Mail   mailer.Service

	FromName string
	From     string

	Status StatusStore
	Events EventPublisher
	Logger *slog.Logger
}

// Confirm returns the download URL sent to the payer.
//
// The signature is checked before the body is validated or anything leaves
// the process, so a forged callback can never reach the ledger or the mailer.
func (p *Pipeline) Confirm(ctx context.Context, cb PaymentCallback) (string, error) {
	log := p.logger()

	if !VerifySignature(p.Secret, cb.OrderID, cb.PaymentID, cb.Signature) {
		log.WarnContext(ctx, "payment signature rejected", "order_id", cb.OrderID, "payment_id", cb.PaymentID)
		return "", ErrInvalidSignature
	}
	if err := Validate(cb); err != nil {
		return "", err
	}

	rec := cb.Record()
	if err := p.Ledger.Record(ctx, rec); err != nil {
		log.ErrorContext(ctx, "ledger forward failed", "order_id", cb.OrderID, "payment_id", cb.PaymentID, "err", err)
		return "", fmt.Errorf("record payment: %w", err)
	}

	link, err := p.Links.Resolve(cb.Course, cb.ClassStand)
	if err != nil {
		log.ErrorContext(ctx, "download link lookup failed", "course", cb.Course, "classstand", cb.ClassStand, "payment_id", cb.PaymentID)
		return "", err
	}

	var body bytes.Buffer
	if err := downloadMail.Execute(&body, struct{ Name, Link string }{cb.Name, link}); err != nil {
		return "", fmt.Errorf("render mail: %w", err)
	}
	if err := p.Mail.Send(ctx, mailer.Email{
		FromName: p.FromName,
		From:     p.From,
		To:       []string{cb.Email},
		Subject:  cb.Course + " Notes & Papers",
		HTMLBody: body.String(),
	}); err != nil {
		log.ErrorContext(ctx, "download mail failed", "payment_id", cb.PaymentID, "err", err)
		return "", fmt.Errorf("send mail: %w", err)
	}

	log.InfoContext(ctx, "payment fulfilled", "order_id", cb.OrderID, "payment_id", cb.PaymentID, "course", cb.Course)
	p.announce(ctx, cb, rec, link)
	return link, nil
}

// announce runs after fulfillment; its failures never change the outcome.
func (p *Pipeline) announce(ctx context.Context, cb PaymentCallback, rec FulfillmentRecord, link string) {
	if p.Status != nil {
		if err := p.Status.SetStatus(ctx, cb.OrderID, StatusPaid); err != nil {
			p.logger().WarnContext(ctx, "cache order status", "order_id", cb.OrderID, "err", err)
		}
	}
	if p.Events != nil {
		err := p.Events.PublishCaptured(ctx, PaymentCapturedPayload{OrderID: cb.OrderID, Record: rec, ReceiptURL: link})
		if err != nil {
			p.logger().WarnContext(ctx, "publish payment captured", "order_id", cb.OrderID, "err", err)
		}
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

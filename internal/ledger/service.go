package ledger

import (
	"context"
	"encoding/json"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-course-payments/internal/kafka"
	"github.com/ariefcatur/go-course-payments/internal/payments"
)

type Store interface {
	InsertCaptured(ctx context.Context, p CapturedPayment) (bool, error)
}

// Service mirrors payment.captured events into Postgres.
type Service struct {
	Store  Store
	Logger *slog.Logger
}

// HandleCaptured is installed as the consumer handler.
func (s *Service) HandleCaptured(ctx context.Context, m kafkago.Message) error {
	var env payments.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// poison message: retrying cannot fix it
		s.Logger.ErrorContext(ctx, "drop undecodable envelope", "offset", m.Offset, "err", err)
		return nil
	}
	if env.EventType != payments.EventPaymentCaptured {
		return nil
	}

	p, err := kafkax.UnwrapPayload[payments.PaymentCapturedPayload](env.Payload)
	if err != nil {
		s.Logger.ErrorContext(ctx, "drop undecodable payload", "event_id", env.EventID, "err", err)
		return nil
	}

	inserted, err := s.Store.InsertCaptured(ctx, CapturedPayment{
		EventID:    env.EventID,
		OrderID:    p.OrderID,
		PaymentID:  p.Record.PaymentID,
		Name:       p.Record.Name,
		Email:      p.Record.Email,
		Phone:      p.Record.Phone,
		Course:     p.Record.Course,
		ClassStand: p.Record.ClassStand,
		ReceiptURL: p.ReceiptURL,
		OccurredAt: env.OccurredAt,
	})
	if err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "captured payment mirrored",
		"event_id", env.EventID, "order_id", p.OrderID, "payment_id", p.Record.PaymentID, "inserted", inserted)
	return nil
}

package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-course-payments/internal/payments"
)

type publisher interface {
	Publish(ctx context.Context, key, value []byte, headers ...kafka.Header) error
}

// DefaultEnqueueTimeout bounds how long a request waits for inbox room.
const DefaultEnqueueTimeout = 2 * time.Second

// CapturedPublisher wraps PaymentCaptured payloads in a v1 envelope.
type CapturedPublisher struct {
	Producer publisher
	Service  string
	Now      func() time.Time

	// EnqueueTimeout defaults to DefaultEnqueueTimeout.
	EnqueueTimeout time.Duration
}

func (p *CapturedPublisher) PublishCaptured(ctx context.Context, payload payments.PaymentCapturedPayload) error {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	ev := payments.Envelope{
		EventID:       uuid.NewString(),
		EventType:     payments.EventPaymentCaptured,
		EventVersion:  1,
		OccurredAt:    now().UTC(),
		Producer:      p.Service,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: payload.OrderID,
		Payload:       MustMarshal(payload),
	}
	timeout := p.EnqueueTimeout
	if timeout <= 0 {
		timeout = DefaultEnqueueTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := p.Producer.Publish(ctx, payments.PartitionKey(payload.OrderID), MustMarshal(ev),
		kafka.Header{Key: "x-event-type", Value: []byte(ev.EventType)},
		kafka.Header{Key: "x-event-version", Value: []byte(strconv.Itoa(ev.EventVersion))},
	)
	if err != nil {
		return fmt.Errorf("enqueue %s for order %s: %w", ev.EventType, payload.OrderID, err)
	}
	return nil
}

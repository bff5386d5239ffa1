package payments

import (
	"context"
	"encoding/json"

	"github.com/ariefcatur/go-course-payments/internal/razorpay"
)

type OrderGateway interface {
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (json.RawMessage, error)
}

type LedgerSink interface {
	Record(ctx context.Context, rec FulfillmentRecord) error
}

// StatusStore caches order status. Optional; failures are logged only.
type StatusStore interface {
	SetStatus(ctx context.Context, orderID string, s Status) error
}

// EventPublisher announces fully processed payments. Optional.
type EventPublisher interface {
	PublishCaptured(ctx context.Context, p PaymentCapturedPayload) error
}

package payments

import (
	"encoding/json"
	"time"
)

const (
	EventPaymentCaptured = "PaymentCaptured"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// PaymentCapturedPayload is emitted once per fully processed callback.
// Replays of the same callback emit new events.
type PaymentCapturedPayload struct {
	OrderID    string            `json:"order_id"`
	Record     FulfillmentRecord `json:"record"`
	ReceiptURL string            `json:"receipt_url"`
}

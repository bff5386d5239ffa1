package payments

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ariefcatur/go-course-payments/internal/razorpay"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls []razorpay.OrderRequest
	resp  json.RawMessage
	err   error
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req razorpay.OrderRequest) (json.RawMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	return g.resp, g.err
}

type fakeLedger struct {
	mu      sync.Mutex
	records []FulfillmentRecord
	err     error
}

func (l *fakeLedger) Record(ctx context.Context, rec FulfillmentRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return l.err
}

type fakeStatus struct {
	mu  sync.Mutex
	set map[string]Status
}

func (s *fakeStatus) SetStatus(ctx context.Context, orderID string, st Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		s.set = map[string]Status{}
	}
	s.set[orderID] = st
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []PaymentCapturedPayload
	err    error
}

func (e *fakeEvents) PublishCaptured(ctx context.Context, p PaymentCapturedPayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, p)
	return nil
}

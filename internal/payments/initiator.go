package payments

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/ariefcatur/go-course-payments/internal/razorpay"
)

// Initiator creates gateway orders for purchase requests.
type Initiator struct {
	Gateway  OrderGateway
	Currency string

	// When Strict, the course/classstand pair must resolve in Links
	// before an order is created.
	Strict bool
	Links  LinkTable

	Status StatusStore
	Logger *slog.Logger
	Now    func() time.Time
}

// CreateOrder returns the gateway's order object untouched. Gateway business
// errors come back as *razorpay.APIError.
func (s *Initiator) CreateOrder(ctx context.Context, req PurchaseRequest) (json.RawMessage, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if s.Strict {
		if _, err := s.Links.Resolve(req.Course, req.ClassStand); err != nil {
			return nil, &ValidationError{Msg: "unknown course/classstand", Fields: []string{req.Course + "/" + req.ClassStand}}
		}
	}

	order, err := s.Gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:         req.Amount * 100,
		Currency:       s.Currency,
		Receipt:        "receipt_" + strconv.FormatInt(s.now().UnixMilli(), 10),
		PaymentCapture: 1,
		Notes: razorpay.Notes{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Course:     req.Course,
			ClassStand: req.ClassStand,
		},
	})
	if err != nil {
		s.logger().ErrorContext(ctx, "create order failed", "course", req.Course, "err", err)
		return nil, err
	}

	if s.Status != nil {
		var o struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(order, &o) == nil && o.ID != "" {
			if err := s.Status.SetStatus(ctx, o.ID, StatusCreated); err != nil {
				s.logger().WarnContext(ctx, "cache order status", "order_id", o.ID, "err", err)
			}
		}
	}
	return order, nil
}

func (s *Initiator) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Initiator) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

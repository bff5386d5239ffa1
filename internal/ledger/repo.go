package ledger

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/ksuid"

	"github.com/ariefcatur/go-course-payments/internal/payments"
)

//go:embed schema.sql
var schema string

type CapturedPayment struct {
	ID         string
	EventID    string
	OrderID    string
	PaymentID  string
	Name       string
	Email      string
	Phone      string
	Course     string
	ClassStand string
	ReceiptURL string
	OccurredAt time.Time
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, schema)
	return err
}

// InsertCaptured stores one row per event. A redelivered event_id is a no-op
// (inserted=false); separate callback replays carry separate event ids.
func (r *Repo) InsertCaptured(ctx context.Context, p CapturedPayment) (inserted bool, err error) {
	if p.ID == "" {
		p.ID = "cp_" + ksuid.New().String()
	}
	ct, err := r.DB.Exec(ctx, `
		INSERT INTO captured_payments(id, event_id, order_id, payment_id, name, email, phone, course, class_stand, receipt_url, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (event_id) DO NOTHING`,
		p.ID, p.EventID, p.OrderID, p.PaymentID, p.Name, p.Email, p.Phone, p.Course, p.ClassStand, p.ReceiptURL, p.OccurredAt,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

// OrderStatus reports PAID once any captured payment exists for the order.
func (r *Repo) OrderStatus(ctx context.Context, orderID string) (payments.Status, error) {
	var id string
	err := r.DB.QueryRow(ctx, `SELECT id FROM captured_payments WHERE order_id=$1 ORDER BY occurred_at DESC LIMIT 1`, orderID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", payments.ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return payments.StatusPaid, nil
}

package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-course-payments/internal/payments"
	"github.com/ariefcatur/go-course-payments/internal/postgres"
)

// Set LEDGER_TEST_POSTGRES_DSN to run against a scratch database.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := os.Getenv("LEDGER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("LEDGER_TEST_POSTGRES_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	repo := &Repo{DB: db}
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func sampleCaptured(orderID string) CapturedPayment {
	return CapturedPayment{
		EventID:    "ev_" + ksuid.New().String(),
		OrderID:    orderID,
		PaymentID:  "pay_1",
		Name:       "A",
		Email:      "a@x.com",
		Phone:      "123",
		Course:     "Physics",
		ClassStand: "11th",
		ReceiptURL: "urlA",
		OccurredAt: time.Now().UTC(),
	}
}

func TestRepo_InsertCapturedIgnoresRedelivery(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	orderID := "order_" + ksuid.New().String()

	p := sampleCaptured(orderID)
	inserted, err := repo.InsertCaptured(ctx, p)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.InsertCaptured(ctx, p)
	require.NoError(t, err)
	assert.False(t, inserted, "same event_id")

	inserted, err = repo.InsertCaptured(ctx, sampleCaptured(orderID))
	require.NoError(t, err)
	assert.True(t, inserted, "replayed callback carries a new event_id")

	var n int
	require.NoError(t, repo.DB.QueryRow(ctx, `SELECT count(*) FROM captured_payments WHERE order_id=$1`, orderID).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestRepo_OrderStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	orderID := "order_" + ksuid.New().String()

	_, err := repo.OrderStatus(ctx, orderID)
	assert.ErrorIs(t, err, payments.ErrOrderNotFound)

	_, err = repo.InsertCaptured(ctx, sampleCaptured(orderID))
	require.NoError(t, err)

	s, err := repo.OrderStatus(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, payments.StatusPaid, s)
}

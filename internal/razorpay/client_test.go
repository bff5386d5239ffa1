package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_Success(t *testing.T) {
	var got OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "shh", pass)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_1","amount":50000,"status":"created"}`))
	}))
	defer srv.Close()

	c := NewClient("rzp_test_key", "shh", srv.URL+"/")
	order, err := c.CreateOrder(context.Background(), OrderRequest{
		Amount:         50000,
		Currency:       "INR",
		Receipt:        "receipt_1",
		PaymentCapture: 1,
		Notes:          Notes{Name: "A", Course: "Physics", ClassStand: "11th"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"order_1","amount":50000,"status":"created"}`, string(order))
	assert.Equal(t, int64(50000), got.Amount)
	assert.Equal(t, "Physics", got.Notes.Course)
	assert.Equal(t, 1, got.PaymentCapture)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount must be at least INR 1.00"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", "s", srv.URL).CreateOrder(context.Background(), OrderRequest{Amount: 0})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "BAD_REQUEST_ERROR", apiErr.Code)
	assert.JSONEq(t, `{"code":"BAD_REQUEST_ERROR","description":"amount must be at least INR 1.00"}`, string(apiErr.Payload))
}

func TestCreateOrder_NonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient("k", "s", srv.URL).CreateOrder(context.Background(), OrderRequest{Amount: 100})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCreateOrder_UnexpectedStatusWithoutErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", "s", srv.URL).CreateOrder(context.Background(), OrderRequest{Amount: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

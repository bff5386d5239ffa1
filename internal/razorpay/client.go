package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Notes travel with the order and come back on the dashboard/webhooks.
type Notes struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Course     string `json:"course"`
	ClassStand string `json:"classstand"`
}

type OrderRequest struct {
	Amount         int64  `json:"amount"` // minor units (paise)
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
	Notes          Notes  `json:"notes"`
}

// APIError is a business error reported by the gateway in its "error" field.
// Payload is the raw error object, relayed to callers unchanged.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Payload     json.RawMessage
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("razorpay: %s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("razorpay: status %d", e.StatusCode)
}

type Client struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	HTTP      *http.Client
}

func NewClient(keyID, keySecret, baseURL string) *Client {
	return &Client{
		KeyID:     keyID,
		KeySecret: keySecret,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateOrder POSTs /v1/orders and returns the order object exactly as the
// gateway sent it.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTP.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("razorpay read response: %w", err)
	}

	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("razorpay decode response (status %d): %w", resp.StatusCode, err)
	}
	if len(probe.Error) > 0 && string(probe.Error) != "null" {
		apiErr := &APIError{StatusCode: resp.StatusCode, Payload: probe.Error}
		var detail struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		}
		if json.Unmarshal(probe.Error, &detail) == nil {
			apiErr.Code, apiErr.Description = detail.Code, detail.Description
		}
		return nil, apiErr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("razorpay create order: unexpected status %d", resp.StatusCode)
	}
	return json.RawMessage(raw), nil
}

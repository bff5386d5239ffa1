package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ariefcatur/go-course-payments/internal/payments"
)

// Sink forwards fulfillment records to the sheet endpoint (an Apps Script web
// app in production). Any 2xx counts as recorded.
type Sink struct {
	URL  string
	HTTP *http.Client
}

func NewSink(url string) *Sink {
	return &Sink{URL: url, HTTP: &http.Client{Timeout: 15 * time.Second}}
}

func (s *Sink) Record(ctx context.Context, rec payments.FulfillmentRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sheet post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheet post: unexpected status %s", resp.Status)
	}
	return nil
}

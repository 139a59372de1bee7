package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 1 << 20

// receiptResponse is the body returned by the receipt service. Only error is
// read on failure; the rest is informational.
type receiptResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Receipt string `json:"receipt"`
	Email   string `json:"email"`
	Total   int64  `json:"total"`
	Error   string `json:"error"`
}

// HTTPGateway posts booking requests to an external receipt service.
type HTTPGateway struct {
	url    string
	client *http.Client
}

func NewHTTPGateway(url string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (g *HTTPGateway) SendReceipt(ctx context.Context, bookingID string, req domain.BookingRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode receipt request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build receipt request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", bookingID)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send receipt request: %w", err)
	}
	defer resp.Body.Close()

	var out receiptResponse

	err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out)
	if err != nil {
		return fmt.Errorf("malformed receipt response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.ReceiptRejectedError{
			StatusCode: resp.StatusCode,
			Reason:     out.Error,
		}
	}

	return nil
}

// Package sheets mirrors payment state into the order spreadsheet through a
// sheet REST gateway (rows addressed by payment id).
package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// OrderRow is the slice of a spreadsheet row this service maintains.
type OrderRow struct {
	PaymentID    string `json:"payment_id"`
	SubmissionID string `json:"submission_id,omitempty"`
	Email        string `json:"email,omitempty"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount,omitempty"`
	UpdatedAt    string `json:"updated_at"`
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	if apiKey != "" {
		http.SetAuthToken(apiKey)
	}
	return &Client{http: http}
}

// UpsertOrderRow writes the row keyed by payment id, updating it in place if
// the sheet already has one.
func (c *Client) UpsertOrderRow(ctx context.Context, row OrderRow) error {
	if row.UpdatedAt == "" {
		row.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"data": row}).
		Put("/rows/payment_id/" + row.PaymentID)
	if err != nil {
		return fmt.Errorf("sheet gateway unreachable: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("sheet gateway rejected row: status %d", res.StatusCode())
	}
	return nil
}

package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the payment provider's invoice REST API.
type Client struct {
	http *resty.Client
}

// NewClient creates a provider client. The API key is used as HTTP basic auth
// username, which is how invoice-style providers authenticate server keys.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(apiKey, "").
		SetTimeout(timeout)
	return &Client{http: http}
}

type invoiceRequest struct {
	ExternalID  string `json:"external_id"`
	Amount      int64  `json:"amount"`
	PayerEmail  string `json:"payer_email,omitempty"`
	Description string `json:"description,omitempty"`
}

type invoiceResponse struct {
	ID         string `json:"id"`
	InvoiceURL string `json:"invoice_url"`
	Status     string `json:"status"`
}

// CreatePaymentLink creates an invoice and returns its checkout URL.
func (c *Client) CreatePaymentLink(ctx context.Context, req LinkRequest) (*Invoice, error) {
	var out invoiceResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(invoiceRequest{
			ExternalID:  req.OrderID,
			Amount:      req.Amount,
			PayerEmail:  req.PayerEmail,
			Description: req.Description,
		}).
		SetResult(&out).
		Post("/v2/invoices")
	if err != nil {
		return nil, fmt.Errorf("payment provider unreachable: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("payment provider rejected invoice: status %d: %s", res.StatusCode(), res.String())
	}
	if out.InvoiceURL == "" {
		return nil, fmt.Errorf("payment provider returned no invoice url")
	}
	return &Invoice{ID: out.ID, InvoiceURL: out.InvoiceURL, Status: out.Status}, nil
}

package payment

import "context"

// LinkRequest describes the checkout to create.
type LinkRequest struct {
	OrderID     string
	Amount      int64
	PayerEmail  string
	Description string
}

// Invoice is the provider's record of a created payment link.
type Invoice struct {
	ID         string
	InvoiceURL string
	Status     string
}

// Gateway is the interface payment providers implement.
type Gateway interface {
	// CreatePaymentLink creates a checkout session for an order. The call is
	// made exactly once: the provider API has no idempotency key, so a retry
	// could double-charge. Failures surface to the caller instead.
	CreatePaymentLink(ctx context.Context, req LinkRequest) (*Invoice, error)
}

// MockGateway is a stand-in provider for tests and local development.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) CreatePaymentLink(_ context.Context, req LinkRequest) (*Invoice, error) {
	return &Invoice{
		ID:         "mock-" + req.OrderID,
		InvoiceURL: "https://pay.example.com/invoice/" + req.OrderID,
		Status:     "pending",
	}, nil
}

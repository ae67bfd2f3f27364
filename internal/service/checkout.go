package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/surveypay/backend/internal/domain"
	"github.com/surveypay/backend/internal/repository"
	"github.com/surveypay/backend/pkg/payment"
)

// CheckoutService takes a validated intake request through extraction,
// persistence, and payment-link creation.
type CheckoutService struct {
	submissions  *repository.SubmissionRepository
	transactions *repository.TransactionRepository
	extraction   *ExtractionService
	gateway      payment.Gateway
}

func NewCheckoutService(submissions *repository.SubmissionRepository, transactions *repository.TransactionRepository, extraction *ExtractionService, gateway payment.Gateway) *CheckoutService {
	return &CheckoutService{
		submissions:  submissions,
		transactions: transactions,
		extraction:   extraction,
		gateway:      gateway,
	}
}

// Create places a survey order: extract metadata for the link, persist the
// submission and a pending transaction, and return the payment URL.
func (s *CheckoutService) Create(ctx context.Context, req domain.CreateSubmissionRequest) (*domain.CheckoutResponse, error) {
	meta, err := s.extraction.Extract(ctx, req.SurveyURL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &domain.FormSubmission{
		ID:            uuid.New().String(),
		Email:         req.Email,
		FullName:      req.FullName,
		SurveyURL:     req.SurveyURL,
		SurveyTitle:   meta.Title,
		Platform:      meta.Platform,
		QuestionCount: meta.QuestionCount,
		PaymentStatus: string(domain.StatusPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, domain.ErrInternal("failed to save submission", err)
	}

	// One attempt only: the provider API has no idempotency key, so a
	// silent retry could create a second invoice for the same order.
	orderID := uuid.New().String()
	invoice, err := s.gateway.CreatePaymentLink(ctx, payment.LinkRequest{
		OrderID:     orderID,
		Amount:      req.Amount,
		PayerEmail:  req.Email,
		Description: meta.Title,
	})
	if err != nil {
		return nil, domain.ErrUpstream("failed to create payment link", err)
	}

	paymentID := invoice.ID
	if paymentID == "" {
		paymentID = orderID
	}
	tx := &domain.Transaction{
		ID:               uuid.New().String(),
		FormSubmissionID: sub.ID,
		PaymentID:        paymentID,
		Status:           string(domain.StatusPending),
		Amount:           req.Amount,
		PaymentURL:       invoice.InvoiceURL,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, domain.ErrInternal("failed to save transaction", err)
	}

	return &domain.CheckoutResponse{
		SubmissionID: sub.ID,
		PaymentID:    paymentID,
		PaymentURL:   invoice.InvoiceURL,
	}, nil
}

// GetSubmission returns a submission by id.
func (s *CheckoutService) GetSubmission(ctx context.Context, id string) (*domain.FormSubmission, error) {
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find submission", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound("submission not found")
	}
	return sub, nil
}

package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/surveypay/backend/internal/domain"
	"github.com/surveypay/backend/pkg/sheets"
)

// Store interfaces are narrowed to what reconciliation touches so the flow
// can be exercised without a database.

type transactionStore interface {
	FindByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, paymentID, from, to string) (bool, error)
}

type submissionStore interface {
	FindByID(ctx context.Context, id string) (*domain.FormSubmission, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) error
}

type failureStore interface {
	Record(ctx context.Context, f *domain.ReconciliationFailure) error
}

type rowUpdater interface {
	UpsertOrderRow(ctx context.Context, row sheets.OrderRow) error
}

type confirmationMailer interface {
	SendPaymentConfirmation(to, fullName, surveyTitle string, amount int64) error
	SendPaymentFailed(to, fullName, surveyTitle string) error
}

// ReconcileService applies payment status changes to the transaction and its
// dependent form submission, then mirrors the result to the spreadsheet and
// notifies the submitter.
type ReconcileService struct {
	transactions transactionStore
	submissions  submissionStore
	failures     failureStore
	sheet        rowUpdater         // optional
	mailer       confirmationMailer // optional
}

func NewReconcileService(transactions transactionStore, submissions submissionStore, failures failureStore, sheet rowUpdater, mailer confirmationMailer) *ReconcileService {
	return &ReconcileService{
		transactions: transactions,
		submissions:  submissions,
		failures:     failures,
		sheet:        sheet,
		mailer:       mailer,
	}
}

// UseSheet wires the spreadsheet mirror side effect.
func (s *ReconcileService) UseSheet(sheet rowUpdater) { s.sheet = sheet }

// UseMailer wires the email notification side effect.
func (s *ReconcileService) UseMailer(mailer confirmationMailer) { s.mailer = mailer }

// ApplyPaymentStatus locates the transaction for paymentID and cascades the
// mapped status to its form submission.
//
// Idempotent under provider retries: re-applying an already-applied status is
// a no-op success. If the cascade to the submission fails after the
// transaction was updated, the call still succeeds — acknowledging the
// webhook is what stops provider retry storms for a payment we have already
// recorded — but the partial failure is logged and persisted for manual
// reconciliation.
func (s *ReconcileService) ApplyPaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) (*domain.UpdateResult, error) {
	tx, err := s.transactions.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, domain.ErrInternal("failed to look up transaction", err)
	}
	if tx == nil {
		return nil, domain.ErrNotFound("no transaction for payment id")
	}

	mapped := status.String()
	result := &domain.UpdateResult{
		TransactionID:    tx.ID,
		FormSubmissionID: tx.FormSubmissionID,
		Status:           mapped,
	}

	if tx.Status == mapped {
		result.AlreadyApplied = true
		return result, nil
	}

	applied, err := s.transactions.UpdateStatus(ctx, paymentID, tx.Status, mapped)
	if err != nil {
		return nil, domain.ErrInternal("failed to update transaction", err)
	}
	if !applied {
		// A concurrent delivery moved the row first.
		result.AlreadyApplied = true
		return result, nil
	}

	if err := s.submissions.UpdatePaymentStatus(ctx, tx.FormSubmissionID, mapped); err != nil {
		result.Partial = true
		s.recordPartialFailure(ctx, paymentID, mapped, "form_submission", err)
	}

	// Spreadsheet and email are best-effort and must not delay the ack.
	// The request context dies when the webhook is answered, so the
	// side effects get a fresh one.
	go s.runSideEffects(context.Background(), tx, status)

	return result, nil
}

func (s *ReconcileService) recordPartialFailure(ctx context.Context, paymentID, status, record string, cause error) {
	log.Printf("⚠️  partial reconciliation failure: payment=%s status=%s record=%s err=%v",
		paymentID, status, record, cause)

	if s.failures == nil {
		return
	}
	f := &domain.ReconciliationFailure{
		ID:           uuid.New().String(),
		PaymentID:    paymentID,
		Status:       status,
		FailedRecord: record,
		Detail:       cause.Error(),
		CreatedAt:    time.Now(),
	}
	if err := s.failures.Record(ctx, f); err != nil {
		log.Printf("⚠️  failed to persist reconciliation failure for payment %s: %v", paymentID, err)
	}
}

func (s *ReconcileService) runSideEffects(ctx context.Context, tx *domain.Transaction, status domain.PaymentStatus) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var sub *domain.FormSubmission
	if s.sheet != nil || s.mailer != nil {
		var err error
		sub, err = s.submissions.FindByID(ctx, tx.FormSubmissionID)
		if err != nil {
			log.Printf("side effects skipped for payment %s: %v", tx.PaymentID, err)
			return
		}
	}

	if s.sheet != nil {
		row := sheets.OrderRow{
			PaymentID:    tx.PaymentID,
			SubmissionID: tx.FormSubmissionID,
			Status:       status.String(),
			Amount:       tx.Amount,
		}
		if sub != nil {
			row.Email = sub.Email
		}
		if err := s.sheet.UpsertOrderRow(ctx, row); err != nil {
			log.Printf("sheet sync failed for payment %s: %v", tx.PaymentID, err)
		}
	}

	if s.mailer != nil && sub != nil {
		var err error
		switch status.Kind {
		case domain.StatusCompleted:
			err = s.mailer.SendPaymentConfirmation(sub.Email, sub.FullName, sub.SurveyTitle, tx.Amount)
		case domain.StatusFailed:
			err = s.mailer.SendPaymentFailed(sub.Email, sub.FullName, sub.SurveyTitle)
		}
		if err != nil {
			log.Printf("notification failed for payment %s: %v", tx.PaymentID, err)
		}
	}
}

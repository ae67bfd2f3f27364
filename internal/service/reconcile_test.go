package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/surveypay/backend/internal/domain"
)

type fakeTransactionStore struct {
	tx          *domain.Transaction
	casAttempts int
	casFails    bool
}

func (f *fakeTransactionStore) FindByPaymentID(_ context.Context, paymentID string) (*domain.Transaction, error) {
	if f.tx == nil || f.tx.PaymentID != paymentID {
		return nil, nil
	}
	cp := *f.tx
	return &cp, nil
}

func (f *fakeTransactionStore) UpdateStatus(_ context.Context, paymentID, from, to string) (bool, error) {
	f.casAttempts++
	if f.casFails {
		return false, nil
	}
	if f.tx == nil || f.tx.PaymentID != paymentID || f.tx.Status != from {
		return false, nil
	}
	f.tx.Status = to
	return true, nil
}

type fakeSubmissionStore struct {
	sub        *domain.FormSubmission
	failUpdate bool
	updates    int
}

func (f *fakeSubmissionStore) FindByID(_ context.Context, id string) (*domain.FormSubmission, error) {
	if f.sub == nil || f.sub.ID != id {
		return nil, nil
	}
	cp := *f.sub
	return &cp, nil
}

func (f *fakeSubmissionStore) UpdatePaymentStatus(_ context.Context, id, status string) error {
	if f.failUpdate {
		return fmt.Errorf("submission store down")
	}
	if f.sub == nil || f.sub.ID != id {
		return fmt.Errorf("submission %s not found", id)
	}
	f.updates++
	f.sub.PaymentStatus = status
	return nil
}

type fakeFailureStore struct {
	recorded []*domain.ReconciliationFailure
}

func (f *fakeFailureStore) Record(_ context.Context, r *domain.ReconciliationFailure) error {
	f.recorded = append(f.recorded, r)
	return nil
}

func newReconcileFixture() (*ReconcileService, *fakeTransactionStore, *fakeSubmissionStore, *fakeFailureStore) {
	txs := &fakeTransactionStore{tx: &domain.Transaction{
		ID:               "tx-1",
		FormSubmissionID: "sub-1",
		PaymentID:        "pay_123",
		Status:           string(domain.StatusPending),
		Amount:           5000,
	}}
	subs := &fakeSubmissionStore{sub: &domain.FormSubmission{
		ID:            "sub-1",
		Email:         "a@b.c",
		FullName:      "Ana",
		PaymentStatus: string(domain.StatusPending),
	}}
	failures := &fakeFailureStore{}
	return NewReconcileService(txs, subs, failures, nil, nil), txs, subs, failures
}

func TestApplyPaymentStatusCascades(t *testing.T) {
	svc, txs, subs, failures := newReconcileFixture()

	result, err := svc.ApplyPaymentStatus(context.Background(), "pay_123", domain.MapProviderStatus("PAID"))
	require.NoError(t, err)
	require.False(t, result.AlreadyApplied)
	require.False(t, result.Partial)
	require.Equal(t, "completed", result.Status)
	require.Equal(t, "completed", txs.tx.Status)
	require.Equal(t, "completed", subs.sub.PaymentStatus)
	require.Empty(t, failures.recorded)
}

func TestApplyPaymentStatusIsIdempotent(t *testing.T) {
	svc, txs, subs, _ := newReconcileFixture()
	status := domain.MapProviderStatus("paid")

	first, err := svc.ApplyPaymentStatus(context.Background(), "pay_123", status)
	require.NoError(t, err)
	require.False(t, first.AlreadyApplied)

	// Provider retry: same payload again.
	second, err := svc.ApplyPaymentStatus(context.Background(), "pay_123", status)
	require.NoError(t, err, "re-delivery must not error")
	require.True(t, second.AlreadyApplied)

	require.Equal(t, "completed", txs.tx.Status)
	require.Equal(t, "completed", subs.sub.PaymentStatus)
	require.Equal(t, 1, subs.updates, "cascade must run once, not per delivery")
	require.Equal(t, 1, txs.casAttempts)
}

func TestApplyPaymentStatusUnknownPayment(t *testing.T) {
	svc, _, _, _ := newReconcileFixture()

	_, err := svc.ApplyPaymentStatus(context.Background(), "pay_unknown", domain.MapProviderStatus("paid"))
	require.Error(t, err)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, 404, appErr.Code)
}

func TestApplyPaymentStatusPartialFailure(t *testing.T) {
	svc, txs, subs, failures := newReconcileFixture()
	subs.failUpdate = true

	result, err := svc.ApplyPaymentStatus(context.Background(), "pay_123", domain.MapProviderStatus("paid"))
	require.NoError(t, err, "caller must still get success so the provider stops retrying")
	require.True(t, result.Partial)
	require.Equal(t, "completed", txs.tx.Status, "transaction update stands")

	require.Len(t, failures.recorded, 1)
	f := failures.recorded[0]
	require.Equal(t, "pay_123", f.PaymentID)
	require.Equal(t, "completed", f.Status)
	require.Equal(t, "form_submission", f.FailedRecord)
	require.NotEmpty(t, f.Detail)
}

func TestApplyPaymentStatusUnrecognizedPassthrough(t *testing.T) {
	svc, txs, _, _ := newReconcileFixture()

	result, err := svc.ApplyPaymentStatus(context.Background(), "pay_123", domain.MapProviderStatus("REFUNDED"))
	require.NoError(t, err)
	require.Equal(t, "refunded", result.Status)
	require.Equal(t, "refunded", txs.tx.Status)
}

func TestApplyPaymentStatusConcurrentDeliveryLoses(t *testing.T) {
	svc, txs, subs, _ := newReconcileFixture()
	// Another delivery wins between our read and our compare-and-set.
	txs.casFails = true

	result, err := svc.ApplyPaymentStatus(context.Background(), "pay_123", domain.MapProviderStatus("paid"))
	require.NoError(t, err)
	require.True(t, result.AlreadyApplied)
	require.Equal(t, 0, subs.updates, "losing delivery must not cascade")
}

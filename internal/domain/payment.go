package domain

import (
	"strings"
	"time"
)

// StatusKind is the closed set of payment states the system acts on.
type StatusKind string

const (
	StatusCompleted StatusKind = "completed"
	StatusPending   StatusKind = "pending"
	StatusFailed    StatusKind = "failed"
	// StatusOther covers provider statuses we do not recognize. The original
	// provider string is kept on the PaymentStatus so nothing is dropped
	// silently, but downstream code cannot mistake it for a known state.
	StatusOther StatusKind = "other"
)

// PaymentStatus is the mapped form of a raw provider status.
type PaymentStatus struct {
	Kind StatusKind
	// Raw holds the lowercased provider status when Kind is StatusOther.
	Raw string
}

// String returns the value persisted to the transactions table: the kind for
// recognized states, the lowercased provider string otherwise.
func (s PaymentStatus) String() string {
	if s.Kind == StatusOther {
		return s.Raw
	}
	return string(s.Kind)
}

func (s PaymentStatus) IsCompleted() bool { return s.Kind == StatusCompleted }

// MapProviderStatus maps a raw provider status to a PaymentStatus. It is
// total: unrecognized inputs come back as StatusOther carrying the lowercased
// raw string instead of failing.
func MapProviderStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "completed", "success", "settlement", "capture":
		return PaymentStatus{Kind: StatusCompleted}
	case "pending", "waiting":
		return PaymentStatus{Kind: StatusPending}
	case "failed", "expired", "canceled", "cancel", "deny":
		return PaymentStatus{Kind: StatusFailed}
	default:
		return PaymentStatus{Kind: StatusOther, Raw: strings.ToLower(strings.TrimSpace(raw))}
	}
}

// PaymentEvent is an incoming payment webhook payload. It is transient and
// never persisted as-is.
type PaymentEvent struct {
	PaymentID string `json:"paymentId"`
	RawStatus string `json:"status"`
	Signature string `json:"-"`
}

// Transaction records a payment attempt for a form submission. Rows are
// created when a payment is initiated, mutated only by reconciliation, and
// never deleted.
type Transaction struct {
	ID               string    `json:"id"`
	FormSubmissionID string    `json:"formSubmissionId"`
	PaymentID        string    `json:"paymentId"`
	Status           string    `json:"status"`
	Amount           int64     `json:"amount"`
	PaymentURL       string    `json:"paymentUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FormSubmission is a survey order placed through the intake form. Its
// PaymentStatus mirrors the owning Transaction's status, with a bounded
// staleness window while reconciliation cascades.
type FormSubmission struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	SurveyURL     string    `json:"surveyUrl"`
	SurveyTitle   string    `json:"surveyTitle,omitempty"`
	Platform      Platform  `json:"platform,omitempty"`
	QuestionCount int       `json:"questionCount"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateSubmissionRequest is the input for the intake endpoint.
type CreateSubmissionRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FullName  string `json:"fullName" validate:"required,min=2"`
	SurveyURL string `json:"surveyUrl" validate:"required,url"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

// CheckoutResponse returns the URL to redirect the submitter to for payment.
type CheckoutResponse struct {
	SubmissionID string `json:"submissionId"`
	PaymentID    string `json:"paymentId"`
	PaymentURL   string `json:"paymentUrl"`
}

// ReconciliationFailure records a partial update: the transaction was
// updated but a dependent record was not. Kept for manual reconciliation.
type ReconciliationFailure struct {
	ID           string    `json:"id"`
	PaymentID    string    `json:"paymentId"`
	Status       string    `json:"status"`
	FailedRecord string    `json:"failedRecord"`
	Detail       string    `json:"detail"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UpdateResult reports what ApplyPaymentStatus did.
type UpdateResult struct {
	TransactionID    string `json:"transactionId"`
	FormSubmissionID string `json:"formSubmissionId"`
	Status           string `json:"status"`
	// AlreadyApplied is true when the same status had been applied before
	// (provider retry); the call was a no-op.
	AlreadyApplied bool `json:"alreadyApplied"`
	// Partial is true when the transaction was updated but the dependent
	// submission update failed. The caller still acks the webhook.
	Partial bool `json:"partial"`
}

package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/surveypay/backend/internal/domain"
	"github.com/surveypay/backend/internal/service"
	"github.com/surveypay/backend/pkg/payment"
)

// SignatureHeader is the provider's webhook signature header.
const SignatureHeader = "X-Callback-Signature"

const maxWebhookBody = 1 << 20

// WebhookHandler processes payment provider callbacks.
type WebhookHandler struct {
	reconcile *service.ReconcileService
	secret    string
}

func NewWebhookHandler(reconcile *service.ReconcileService, secret string) *WebhookHandler {
	return &WebhookHandler{reconcile: reconcile, secret: secret}
}

// HandlePayment handles POST /api/payment/webhook.
//
// Signature verification runs over the raw body before any parsing, and
// fails closed: no configured secret means no accepted webhooks. A 200 here
// is the provider's signal to stop retrying, so it is returned even when the
// submission cascade partially failed (the failure is recorded separately).
func (h *WebhookHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		Error(w, domain.ErrBadRequest("failed to read body"))
		return
	}

	if !payment.VerifySignature(body, r.Header.Get(SignatureHeader), h.secret) {
		Error(w, domain.ErrUnauthorized("invalid signature"))
		return
	}

	var event domain.PaymentEvent
	if err := unmarshalEvent(body, &event); err != nil {
		Error(w, err)
		return
	}

	status := domain.MapProviderStatus(event.RawStatus)
	result, err := h.reconcile.ApplyPaymentStatus(r.Context(), event.PaymentID, status)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, result)
}

// unmarshalEvent reads the provider payload. Providers disagree on the id
// key, so a couple of spellings are accepted.
func unmarshalEvent(body []byte, event *domain.PaymentEvent) error {
	var raw struct {
		PaymentID  string `json:"paymentId"`
		ID         string `json:"id"`
		ExternalID string `json:"external_id"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.ErrBadRequest("invalid JSON body")
	}

	event.PaymentID = raw.PaymentID
	if event.PaymentID == "" {
		event.PaymentID = raw.ID
	}
	if event.PaymentID == "" {
		event.PaymentID = raw.ExternalID
	}
	event.RawStatus = raw.Status

	if event.PaymentID == "" || event.RawStatus == "" {
		return domain.ErrBadRequest("paymentId and status are required")
	}
	return nil
}

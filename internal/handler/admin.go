package handler

import (
	"net/http"
	"strconv"

	"github.com/surveypay/backend/internal/domain"
	"github.com/surveypay/backend/internal/repository"
)

// AdminHandler exposes read-only reconciliation views for operators.
type AdminHandler struct {
	transactions *repository.TransactionRepository
	submissions  *repository.SubmissionRepository
	failures     *repository.FailureRepository
}

func NewAdminHandler(transactions *repository.TransactionRepository, submissions *repository.SubmissionRepository, failures *repository.FailureRepository) *AdminHandler {
	return &AdminHandler{
		transactions: transactions,
		submissions:  submissions,
		failures:     failures,
	}
}

func listLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}

// ListTransactions handles GET /api/admin/transactions?status=&limit=.
func (h *AdminHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	items, err := h.transactions.List(r.Context(), status, listLimit(r))
	if err != nil {
		Error(w, domain.ErrInternal("failed to list transactions", err))
		return
	}
	JSON(w, http.StatusOK, map[string]any{"transactions": items})
}

// ListSubmissions handles GET /api/admin/submissions?limit=.
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	items, err := h.submissions.ListRecent(r.Context(), listLimit(r))
	if err != nil {
		Error(w, domain.ErrInternal("failed to list submissions", err))
		return
	}
	JSON(w, http.StatusOK, map[string]any{"submissions": items})
}

// ListReconciliationFailures handles GET /api/admin/reconciliation-failures?limit=.
func (h *AdminHandler) ListReconciliationFailures(w http.ResponseWriter, r *http.Request) {
	items, err := h.failures.ListRecent(r.Context(), listLimit(r))
	if err != nil {
		Error(w, domain.ErrInternal("failed to list reconciliation failures", err))
		return
	}
	JSON(w, http.StatusOK, map[string]any{"failures": items})
}

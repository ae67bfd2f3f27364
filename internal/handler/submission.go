package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/surveypay/backend/internal/domain"
	"github.com/surveypay/backend/internal/service"
)

// SubmissionHandler serves the intake form endpoints.
type SubmissionHandler struct {
	checkout *service.CheckoutService
	validate *validator.Validate
}

func NewSubmissionHandler(checkout *service.CheckoutService) *SubmissionHandler {
	return &SubmissionHandler{
		checkout: checkout,
		validate: validator.New(),
	}
}

// Create handles POST /api/submissions.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSubmissionRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		Error(w, domain.ErrValidation(err.Error()))
		return
	}

	resp, err := h.checkout.Create(r.Context(), req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, resp)
}

// GetByID handles GET /api/submissions/{id}.
func (h *SubmissionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		Error(w, domain.ErrBadRequest("missing submission id"))
		return
	}

	sub, err := h.checkout.GetSubmission(r.Context(), id)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, sub)
}

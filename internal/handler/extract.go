package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/surveypay/backend/internal/domain"
	"github.com/surveypay/backend/internal/service"
)

// ExtractHandler serves survey metadata extraction.
type ExtractHandler struct {
	extraction *service.ExtractionService
	validate   *validator.Validate
}

func NewExtractHandler(extraction *service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{
		extraction: extraction,
		validate:   validator.New(),
	}
}

// Extract handles POST /api/extract.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req domain.ExtractRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		Error(w, domain.ErrBadRequest("url is required and must be a valid URL"))
		return
	}

	meta, err := h.extraction.Extract(r.Context(), req.URL)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, meta)
}

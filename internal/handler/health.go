package handler

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	db *pgxpool.Pool
}

func NewHealthHandler(db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}

	code := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		status["database"] = "error"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		status["database"] = "ok"
	}

	JSON(w, code, status)
}

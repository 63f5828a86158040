package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/pkg/logger"
)

// HealthHandler reports liveness. When check is set a failing check turns
// the answer into a 503.
type HealthHandler struct {
	check  func(ctx context.Context) error
	logger logger.Logger
}

func NewHealthHandler(check func(ctx context.Context) error, logger logger.Logger) *HealthHandler {
	return &HealthHandler{check: check, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(r *mux.Router, _ Guards) {
	r.HandleFunc("/api/health", h.handleHealth).Methods(http.MethodGet)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.check != nil {
		if err := h.check(r.Context()); err != nil {
			h.logger.WithField("error", err.Error()).Warn("Health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

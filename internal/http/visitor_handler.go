package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

// SessionHeader carries the visitor session token in both directions
const SessionHeader = "X-Visitor-Session"

type VisitorHandler struct {
	service domain.VisitorService
	logger  logger.Logger
}

func NewVisitorHandler(service domain.VisitorService, logger logger.Logger) *VisitorHandler {
	return &VisitorHandler{service: service, logger: logger}
}

func (h *VisitorHandler) RegisterRoutes(r *mux.Router, g Guards) {
	r.HandleFunc("/api/visitors", h.handleCount).Methods(http.MethodGet)
	r.Handle("/api/visitors/track", g.visit(h.handleTrack)).Methods(http.MethodPost)
	r.Handle("/api/visitors/increment", g.visit(h.handleTrack)).Methods(http.MethodPost)
	r.Handle("/api/visitors/stats", g.auth(h.handleStats)).Methods(http.MethodGet)
	r.Handle("/api/visitors/reset", g.auth(h.handleReset)).Methods(http.MethodPost)
}

func (h *VisitorHandler) handleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

type trackRequest struct {
	SessionToken string `json:"sessionToken"`
}

// handleTrack takes the session token from the header, or from an optional
// JSON body for clients that cannot set headers.
func (h *VisitorHandler) handleTrack(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(SessionHeader)
	if token == "" && r.ContentLength > 0 {
		var req trackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			token = req.SessionToken
		}
	}

	result, err := h.service.Track(r.Context(), r.UserAgent(), token)
	if err != nil {
		h.logger.Error(fmt.Sprintf("Failed to track visit: %v", err))
		writeServiceError(w, err)
		return
	}

	if result.SessionToken != "" {
		w.Header().Set(SessionHeader, result.SessionToken)
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *VisitorHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	topN := 0
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			WriteJSONError(w, "top must be a positive integer", http.StatusBadRequest)
			return
		}
		topN = n
	}

	stats, err := h.service.Stats(r.Context(), topN)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *VisitorHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   0,
		"message": "Visitor count reset",
	})
}

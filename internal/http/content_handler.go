package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

// MaxContentBytes bounds a single content document upload. Gallery documents
// may embed images as data URLs.
const MaxContentBytes = 50 << 20

type ContentHandler struct {
	service domain.ContentService
	logger  logger.Logger
}

func NewContentHandler(service domain.ContentService, logger logger.Logger) *ContentHandler {
	return &ContentHandler{service: service, logger: logger}
}

func (h *ContentHandler) RegisterRoutes(r *mux.Router, g Guards) {
	r.Handle("/api/content", g.auth(h.handleKeys)).Methods(http.MethodGet)
	r.HandleFunc("/api/content/{key}", h.handleGet).Methods(http.MethodGet)
	r.Handle("/api/content/{key}", g.auth(h.handleSet)).Methods(http.MethodPost, http.MethodPut)
	r.Handle("/api/content/{key}", g.auth(h.handleDelete)).Methods(http.MethodDelete)
}

// handleGet answers a never saved key with a literal null
func (h *ContentHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	key := domain.ContentKey(mux.Vars(r)["key"])

	raw, err := h.service.Get(r.Context(), key)
	if err != nil {
		h.logger.WithField("key", string(key)).Error(fmt.Sprintf("Failed to get content: %v", err))
		writeServiceError(w, err)
		return
	}
	if raw == nil {
		raw = json.RawMessage("null")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *ContentHandler) handleSet(w http.ResponseWriter, r *http.Request) {
	key := domain.ContentKey(mux.Vars(r)["key"])

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxContentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, "Content document is too large", http.StatusRequestEntityTooLarge)
			return
		}
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !json.Valid(raw) {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Set(r.Context(), key, raw); err != nil {
		if !domain.IsValidationError(err) {
			h.logger.WithFields(map[string]interface{}{
				"key":   string(key),
				"bytes": len(raw),
			}).Error(fmt.Sprintf("Failed to save content: %v", err))
		}
		writeServiceError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"key":   string(key),
		"bytes": len(raw),
	}).Info("Content saved")
	writeMessage(w, http.StatusOK, "Content updated")
}

func (h *ContentHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), domain.ContentKey(mux.Vars(r)["key"])); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Content deleted")
}

func (h *ContentHandler) handleKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.service.Keys(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if keys == nil {
		keys = []domain.ContentKey{}
	}
	writeJSON(w, http.StatusOK, keys)
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type MessageHandler struct {
	service domain.MessageService
	logger  logger.Logger
}

func NewMessageHandler(service domain.MessageService, logger logger.Logger) *MessageHandler {
	return &MessageHandler{service: service, logger: logger}
}

func (h *MessageHandler) RegisterRoutes(r *mux.Router, g Guards) {
	r.Handle("/api/messages", g.form(h.handleCreate)).Methods(http.MethodPost)
	r.Handle("/api/messages", g.auth(h.handleList)).Methods(http.MethodGet)
	r.Handle("/api/messages/{id}/status", g.auth(h.handleUpdateStatus)).Methods(http.MethodPut)
	r.Handle("/api/messages/{id}", g.auth(h.handleDelete)).Methods(http.MethodDelete)
}

func (h *MessageHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMessageRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	msg, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":      msg.ID,
		"message": "Message sent successfully",
	})
}

func (h *MessageHandler) handleList(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list messages")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMessageStatusRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Status updated successfully")
}

func (h *MessageHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Message deleted successfully")
}

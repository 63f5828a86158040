package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type CategoryHandler struct {
	service domain.CategoryService
	logger  logger.Logger
}

func NewCategoryHandler(service domain.CategoryService, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, logger: logger}
}

func (h *CategoryHandler) RegisterRoutes(r *mux.Router, g Guards) {
	r.HandleFunc("/api/categories", h.handleList).Methods(http.MethodGet)
	r.Handle("/api/categories", g.auth(h.handleCreate)).Methods(http.MethodPost)
	r.Handle("/api/categories/{id}", g.auth(h.handleUpdate)).Methods(http.MethodPut)
	r.Handle("/api/categories/{id}", g.auth(h.handleDelete)).Methods(http.MethodDelete)
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list categories")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.CategoryInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}

	category, err := h.service.Create(r.Context(), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in domain.CategoryInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}

	category, err := h.service.Update(r.Context(), mux.Vars(r)["id"], &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category updated successfully",
		"category": category,
	})
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Category deleted successfully")
}

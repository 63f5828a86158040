package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type MenuHandler struct {
	service domain.MenuService
	logger  logger.Logger
}

func NewMenuHandler(service domain.MenuService, logger logger.Logger) *MenuHandler {
	return &MenuHandler{service: service, logger: logger}
}

func (h *MenuHandler) RegisterRoutes(r *mux.Router, g Guards) {
	r.HandleFunc("/api/menu", h.handleList).Methods(http.MethodGet)
	r.Handle("/api/menu", g.auth(h.handleCreate)).Methods(http.MethodPost)
	r.Handle("/api/menu/{id}", g.auth(h.handleUpdate)).Methods(http.MethodPut)
	r.Handle("/api/menu/{id}", g.auth(h.handleDelete)).Methods(http.MethodDelete)
}

func (h *MenuHandler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list menu items")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.MenuItemInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}

	item, err := h.service.Create(r.Context(), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var in domain.MenuItemInput
	if !decodeJSON(w, r, h.logger, &in) {
		return
	}

	item, err := h.service.Update(r.Context(), id, &in)
	if err != nil {
		if !domain.IsValidationError(err) && !domain.IsNotFound(err) {
			h.logger.WithField("menu_item_id", id).Error(fmt.Sprintf("Failed to update menu item: %v", err))
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Updated successfully",
		"item":    item,
	})
}

func (h *MenuHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Deleted successfully")
}

package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type ReservationHandler struct {
	service domain.ReservationService
	logger  logger.Logger
}

func NewReservationHandler(service domain.ReservationService, logger logger.Logger) *ReservationHandler {
	return &ReservationHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the public booking form and the admin views.
// The export route lives on ExportHandler.
func (h *ReservationHandler) RegisterRoutes(r *mux.Router, g Guards) {
	r.Handle("/api/reservations", g.form(h.handleCreate)).Methods(http.MethodPost)
	r.Handle("/api/reservations", g.auth(h.handleList)).Methods(http.MethodGet)
	r.Handle("/api/reservations/{id}/status", g.auth(h.handleUpdateStatus)).Methods(http.MethodPut)
	r.Handle("/api/reservations/{id}", g.auth(h.handleDelete)).Methods(http.MethodDelete)
}

func (h *ReservationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReservationRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	reservation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":      reservation.ID,
		"message": "Reservation created successfully",
	})
}

func (h *ReservationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.List(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list reservations")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.UpdateReservationStatusRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if !domain.IsNotFound(err) {
			h.logger.WithField("reservation_id", id).Error(fmt.Sprintf("Failed to update reservation status: %v", err))
		}
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reservation status updated successfully")
}

func (h *ReservationHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Deleted successfully")
}

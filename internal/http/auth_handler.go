package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type AuthHandler struct {
	service domain.AuthService
	logger  logger.Logger
}

func NewAuthHandler(service domain.AuthService, logger logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(r *mux.Router, _ Guards) {
	r.HandleFunc("/api/login", h.handleLogin).Methods(http.MethodPost)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if !domain.IsValidationError(err) {
			h.logger.WithField("email", req.Email).Warn(fmt.Sprintf("Login rejected: %v", err))
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

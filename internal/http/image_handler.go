package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

// multipartOverhead leaves room for boundaries and headers around the file part
const multipartOverhead = 1 << 20

type ImageHandler struct {
	service  domain.ImageService
	maxBytes int64
	logger   logger.Logger
}

func NewImageHandler(service domain.ImageService, maxBytes int64, logger logger.Logger) *ImageHandler {
	return &ImageHandler{service: service, maxBytes: maxBytes, logger: logger}
}

func (h *ImageHandler) RegisterRoutes(r *mux.Router, g Guards) {
	r.Handle("/api/upload/image", g.auth(h.handleUpload)).Methods(http.MethodPost)
	r.HandleFunc("/api/images/{id}", h.handleGet).Methods(http.MethodGet)
	r.Handle("/api/images/{id}", g.auth(h.handleDelete)).Methods(http.MethodDelete)
}

func (h *ImageHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, fmt.Sprintf("image exceeds the %d byte limit", h.maxBytes), http.StatusBadRequest)
			return
		}
		WriteJSONError(w, "No image file provided", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteJSONError(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// one byte past the limit is enough for the service to reject it
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		h.logger.Error(fmt.Sprintf("Failed to read uploaded image: %v", err))
		WriteJSONError(w, "Failed to read uploaded image", http.StatusBadRequest)
		return
	}

	img, err := h.service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":       img.ID,
		"filename": img.Filename,
		"url":      img.URL,
	})
}

func (h *ImageHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *ImageHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Image deleted successfully")
}

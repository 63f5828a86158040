package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/csvexport"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type ExportHandler struct {
	service domain.ExportService
	logger  logger.Logger
}

func NewExportHandler(service domain.ExportService, logger logger.Logger) *ExportHandler {
	return &ExportHandler{service: service, logger: logger}
}

func (h *ExportHandler) RegisterRoutes(r *mux.Router, g Guards) {
	r.Handle("/api/reservations/export", g.auth(h.download(h.service.Reservations))).Methods(http.MethodGet)
	r.Handle("/api/messages/export", g.auth(h.download(h.service.Messages))).Methods(http.MethodGet)
}

func (h *ExportHandler) download(render func(context.Context) (*domain.CSVExport, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		export, err := render(r.Context())
		if errors.Is(err, csvexport.ErrNoData) {
			WriteJSONError(w, "No data to export", http.StatusNotFound)
			return
		}
		if err != nil {
			h.logger.WithField("path", r.URL.Path).Error(fmt.Sprintf("Failed to export: %v", err))
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(export.Data)
	}
}

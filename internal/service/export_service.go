package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/csvexport"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

const exportTimeLayout = "2006-01-02 15:04:05"

type reservationExportRow struct {
	ID        string `json:"ID"`
	Name      string `json:"Name"`
	Email     string `json:"Email"`
	Phone     string `json:"Phone"`
	Date      string `json:"Date"`
	Time      string `json:"Time"`
	Guests    int    `json:"Guests"`
	Status    string `json:"Status"`
	CreatedAt string `json:"Created At"`
}

type messageExportRow struct {
	ID        string `json:"ID"`
	Name      string `json:"Name"`
	Email     string `json:"Email"`
	Subject   string `json:"Subject"`
	Message   string `json:"Message"`
	Status    string `json:"Status"`
	CreatedAt string `json:"Created At"`
}

// ExportService renders the admin CSV downloads
type ExportService struct {
	reservations domain.ReservationRepository
	messages     domain.MessageRepository
	logger       logger.Logger
	now          func() time.Time
}

func NewExportService(reservations domain.ReservationRepository, messages domain.MessageRepository, logger logger.Logger) *ExportService {
	return &ExportService{reservations: reservations, messages: messages, logger: logger, now: time.Now}
}

// Reservations returns csvexport.ErrNoData when there is nothing to export
func (s *ExportService) Reservations(ctx context.Context) (*domain.CSVExport, error) {
	list, err := s.reservations.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list reservations for export: %v", err))
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	rows := make([]reservationExportRow, len(list))
	for i, r := range list {
		rows[i] = reservationExportRow{
			ID:        r.ID,
			Name:      r.Name,
			Email:     r.Email,
			Phone:     r.Phone,
			Date:      r.Date,
			Time:      r.Time,
			Guests:    r.Guests,
			Status:    string(r.Status),
			CreatedAt: r.CreatedAt.UTC().Format(exportTimeLayout),
		}
	}
	return s.render("reservations", rows, len(rows))
}

func (s *ExportService) Messages(ctx context.Context) (*domain.CSVExport, error) {
	list, err := s.messages.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list messages for export: %v", err))
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	rows := make([]messageExportRow, len(list))
	for i, m := range list {
		rows[i] = messageExportRow{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Subject:   m.Subject,
			Message:   m.Message,
			Status:    string(m.Status),
			CreatedAt: m.CreatedAt.UTC().Format(exportTimeLayout),
		}
	}
	return s.render("contact_messages", rows, len(rows))
}

func (s *ExportService) render(name string, rows any, count int) (*domain.CSVExport, error) {
	data, err := csvexport.Encode(rows)
	if err != nil {
		return nil, err
	}
	return &domain.CSVExport{
		Filename: csvexport.Filename(name, s.now()),
		Data:     data,
		Rows:     count,
	}, nil
}

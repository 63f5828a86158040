package embedded

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type reservationRepository struct {
	db *gorm.DB
}

func (row *reservationRow) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:              row.ID,
		Name:            row.Name,
		Email:           row.Email,
		Phone:           row.Phone,
		Date:            row.Date,
		Time:            row.Time,
		Guests:          row.Guests,
		SpecialRequests: row.SpecialRequests,
		Status:          domain.ReservationStatus(row.Status),
		CreatedAt:       row.CreatedAt,
	}
}

func (r *reservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	var rows []reservationRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("rowid DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	out := make([]*domain.Reservation, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

func (r *reservationRepository) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	var row reservationRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.ErrNotFound{Entity: "reservation", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return row.toDomain(), nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	row := reservationRow{
		ID:              res.ID,
		Name:            res.Name,
		Email:           res.Email,
		Phone:           res.Phone,
		Date:            res.Date,
		Time:            res.Time,
		Guests:          res.Guests,
		SpecialRequests: res.SpecialRequests,
		Status:          string(res.Status),
		CreatedAt:       res.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	result := r.db.WithContext(ctx).Model(&reservationRow{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update reservation status: %w", result.Error)
	}
	return requireAffected(result, "reservation", id)
}

func (r *reservationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&reservationRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation: %w", result.Error)
	}
	return requireAffected(result, "reservation", id)
}

type messageRepository struct {
	db *gorm.DB
}

func (row *messageRow) toDomain() *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Subject:   row.Subject,
		Message:   row.Message,
		Status:    domain.MessageStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}
}

func (r *messageRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	var rows []messageRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("rowid DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	out := make([]*domain.ContactMessage, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

func (r *messageRepository) Get(ctx context.Context, id string) (*domain.ContactMessage, error) {
	var row messageRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.ErrNotFound{Entity: "message", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return row.toDomain(), nil
}

func (r *messageRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	row := messageRow{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) error {
	result := r.db.WithContext(ctx).Model(&messageRow{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update message status: %w", result.Error)
	}
	return requireAffected(result, "message", id)
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&messageRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	return requireAffected(result, "message", id)
}

package service

import (
	"context"
	"fmt"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

type ReservationService struct {
	repo     domain.ReservationRepository
	notifier Notifier
	logger   logger.Logger
}

func NewReservationService(repo domain.ReservationRepository, notifier Notifier, logger logger.Logger) *ReservationService {
	return &ReservationService{repo: repo, notifier: notifier, logger: logger}
}

// Create stores a booking from the public form. The status is always pending.
func (s *ReservationService) Create(ctx context.Context, req *domain.CreateReservationRequest) (*domain.Reservation, error) {
	reservation, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		s.logger.WithField("email", reservation.Email).Error(fmt.Sprintf("Failed to create reservation: %v", err))
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if s.notifier != nil {
		s.notifier.ReservationCreated(ctx, reservation)
	}
	return reservation, nil
}

func (s *ReservationService) List(ctx context.Context) ([]*domain.Reservation, error) {
	reservations, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list reservations: %v", err))
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// UpdateStatus accepts any transition between known statuses
func (s *ReservationService) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	req := domain.UpdateReservationStatusRequest{Status: status}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("reservation_id", id).Error(fmt.Sprintf("Failed to update reservation status: %v", err))
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	return nil
}

func (s *ReservationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("reservation_id", id).Error(fmt.Sprintf("Failed to delete reservation: %v", err))
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

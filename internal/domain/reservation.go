package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_reservation_repository.go -package mocks github.com/oseiserwaa/kitchen/internal/domain ReservationRepository

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

type Reservation struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Guests          int               `json:"guests"`
	SpecialRequests string            `json:"specialRequests"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// CreateReservationRequest is what the public booking form posts
type CreateReservationRequest struct {
	Name            string `json:"name" valid:"required"`
	Email           string `json:"email" valid:"required"`
	Phone           string `json:"phone"`
	Date            string `json:"date" valid:"required"`
	Time            string `json:"time" valid:"required"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"specialRequests"`
}

// Validate trims the request and returns a pending reservation
func (r *CreateReservationRequest) Validate() (*Reservation, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)

	if _, err := govalidator.ValidateStruct(r); err != nil {
		return nil, NewValidationError("Missing required fields")
	}
	if !govalidator.IsEmail(r.Email) {
		return nil, NewValidationError("invalid email address")
	}
	if r.Guests < 1 {
		return nil, NewValidationError("guests must be at least 1")
	}

	return &Reservation{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           strings.TrimSpace(r.Phone),
		Date:            r.Date,
		Time:            r.Time,
		Guests:          r.Guests,
		SpecialRequests: r.SpecialRequests,
		Status:          ReservationPending,
	}, nil
}

type UpdateReservationStatusRequest struct {
	Status ReservationStatus `json:"status"`
}

func (r *UpdateReservationStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return NewValidationError("Invalid status value")
	}
	return nil
}

// ReservationRepository lists newest first
type ReservationRepository interface {
	List(ctx context.Context) ([]*Reservation, error)
	Get(ctx context.Context, id string) (*Reservation, error)
	Create(ctx context.Context, reservation *Reservation) error
	UpdateStatus(ctx context.Context, id string, status ReservationStatus) error
	Delete(ctx context.Context, id string) error
}

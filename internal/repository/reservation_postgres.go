package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new PostgreSQL reservation repository
func NewReservationRepository(db *sql.DB) domain.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationSelect = `
	SELECT id, name, email, phone, date, time, guests, special_requests, status, created_at
	FROM reservations
`

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.Email,
		&res.Phone,
		&res.Date,
		&res.Time,
		&res.Guests,
		&res.SpecialRequests,
		&res.Status,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, reservationSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	reservations := []*domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservations: %w", err)
	}
	return reservations, nil
}

func (r *reservationRepository) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx, reservationSelect+` WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "reservation", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}

	query, args, err := psql.Insert("reservations").
		Columns("id", "name", "email", "phone", "date", "time", "guests", "special_requests", "status", "created_at").
		Values(res.ID, res.Name, res.Email, res.Phone, res.Date, res.Time, res.Guests, res.SpecialRequests, res.Status, res.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	return requireAffected(result, "reservation", id)
}

func (r *reservationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return requireAffected(result, "reservation", id)
}

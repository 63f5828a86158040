package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/repository/testutil"
)

func TestReservationRepository_List(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewReservationRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM reservations\s+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(testutil.ReservationColumns).
			AddRow("r2", "Kofi", "kofi@example.com", "", "2024-12-25", "13:00", 2, "", "confirmed", now).
			AddRow("r1", "Ama", "ama@example.com", "024", "2024-12-24", "19:00", 4, "Window seat", "pending", now.Add(-time.Hour)))

	list, err := repo.List(ctx())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.ReservationConfirmed, list[0].Status)
	assert.Equal(t, "Window seat", list[1].SpecialRequests)
}

func TestReservationRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewReservationRepository(db)

	res := &domain.Reservation{Name: "Ama", Email: "ama@example.com", Date: "2024-12-24", Time: "19:00", Guests: 4, Status: domain.ReservationPending}

	mock.ExpectExec(`INSERT INTO reservations \(id,name,email,phone,date,time,guests,special_requests,status,created_at\)`).
		WithArgs(sqlmock.AnyArg(), "Ama", "ama@example.com", "", "2024-12-24", "19:00", 4, "", "pending", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx(), res))
	assert.NotEmpty(t, res.ID)
	assert.False(t, res.CreatedAt.IsZero())
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewReservationRepository(db)

	mock.ExpectExec(`UPDATE reservations SET status = \$1 WHERE id = \$2`).
		WithArgs("cancelled", "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateStatus(ctx(), "r1", domain.ReservationCancelled))

	mock.ExpectExec(`UPDATE reservations SET status = \$1 WHERE id = \$2`).
		WithArgs("cancelled", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, domain.IsNotFound(repo.UpdateStatus(ctx(), "gone", domain.ReservationCancelled)))
}

func TestReservationRepository_GetAndDelete(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewReservationRepository(db)

	mock.ExpectQuery(`FROM reservations\s+WHERE id = \$1`).WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(testutil.ReservationColumns))
	_, err := repo.Get(ctx(), "r1")
	assert.True(t, domain.IsNotFound(err))

	mock.ExpectExec(`DELETE FROM reservations WHERE id = \$1`).WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx(), "r1"))
}

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

func TestVisitorRepository_RecordVisit(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewVisitorRepository(db)

	log := &domain.VisitorLog{UserAgent: "Mozilla/5.0", Browser: "Chrome", DeviceType: "Desktop", OS: "Windows"}
	mock.ExpectQuery(`SELECT track_visit\(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)`).
		WithArgs(sqlmock.AnyArg(), "Mozilla/5.0", "Chrome", "Desktop", "Windows", sqlmock.AnyArg(), "2024-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"track_visit"}).AddRow(int64(42)))

	total, err := repo.RecordVisit(ctx(), log, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.NotEmpty(t, log.ID)
}

func TestVisitorRepository_GetTotal(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewVisitorRepository(db)

	mock.ExpectQuery(`SELECT value FROM site_content WHERE key = \$1`).WithArgs("site_visitors").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"count": 17}`)))
	total, err := repo.GetTotal(ctx())
	require.NoError(t, err)
	assert.Equal(t, int64(17), total)

	mock.ExpectQuery(`SELECT value FROM site_content WHERE key = \$1`).WithArgs("site_visitors").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, err = repo.GetTotal(ctx())
	assert.True(t, domain.IsNotFound(err))
}

func TestVisitorRepository_SumAndReset(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewVisitorRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(count\), 0\) FROM daily_visitors`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(9)))
	sum, err := repo.SumDaily(ctx())
	require.NoError(t, err)
	assert.Equal(t, int64(9), sum)

	mock.ExpectExec(`INSERT INTO site_content`).
		WithArgs("site_visitors", []byte(`{"count":0}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.ResetTotal(ctx()))
}

func TestVisitorRepository_DailyCounts(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewVisitorRepository(db)

	mock.ExpectQuery(`FROM daily_visitors\s+WHERE date >= \$1::date\s+ORDER BY date ASC`).WithArgs("2024-05-04").
		WillReturnRows(sqlmock.NewRows([]string{"date", "count"}).
			AddRow("2024-06-01", int64(3)).
			AddRow("2024-06-02", int64(5)))

	counts, err := repo.DailyCounts(ctx(), "2024-05-04")
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyVisitorCount{{Date: "2024-06-01", Count: 3}, {Date: "2024-06-02", Count: 5}}, counts)
}

func TestVisitorRepository_RecentLogs(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewVisitorRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM visitor_logs ORDER BY visited_at DESC LIMIT 50`).
		WillReturnRows(sqlmock.NewRows(testutil.VisitorLogColumns).
			AddRow("v2", "ua", "Safari", "Mobile", "iOS", now).
			AddRow("v1", "ua", "Chrome", "Desktop", "Windows", now.Add(-time.Minute)))

	logs, err := repo.RecentLogs(ctx(), 50)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "Safari", logs[0].Browser)
}

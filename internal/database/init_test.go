package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiserwaa/kitchen/internal/database/schema"
)

func TestInitializeDatabase(t *testing.T) {
	t.Run("creates tables successfully", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for range schema.TableDefinitions {
			mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		assert.NoError(t, InitializeDatabase(db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS site_content").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS site_content_items").WillReturnError(errors.New("permission denied"))

		err = InitializeDatabase(db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create table")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCleanDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DROP FUNCTION IF EXISTS track_visit").WillReturnResult(sqlmock.NewResult(0, 0))
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		mock.ExpectExec("DROP TABLE IF EXISTS " + schema.TableNames[i]).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, CleanDatabase(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackVisitFunctionIsInstalled(t *testing.T) {
	assert.Equal(t, schema.TrackVisitFunction, schema.TableDefinitions[len(schema.TableDefinitions)-1])
	assert.Contains(t, schema.TrackVisitFunction, "ON CONFLICT (date) DO UPDATE")
}

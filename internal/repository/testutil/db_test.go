package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMockDB(t *testing.T) {
	t.Run("creates mock DB successfully", func(t *testing.T) {
		db, mock, cleanup := SetupMockDB(t)
		defer cleanup()

		require.NotNil(t, db)
		require.NotNil(t, mock)
		assert.IsType(t, (*sql.DB)(nil), db)
	})

	t.Run("expectations are usable with regexp", func(t *testing.T) {
		db, mock, cleanup := SetupMockDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT (.+) FROM menu_items").
			WillReturnRows(sqlmock.NewRows(MenuItemColumns).AddRow("1", "Fufu", "", 9.0, "mains", "", false, true, 0))

		rows, err := db.Query("SELECT id FROM menu_items")
		require.NoError(t, err)
		rows.Close()
	})

	t.Run("cleanup closes database", func(t *testing.T) {
		db, _, cleanup := SetupMockDB(t)
		assert.NoError(t, db.Ping())
		cleanup()
		assert.Error(t, db.Ping())
	})
}

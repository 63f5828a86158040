package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SetupMockDB creates a mock database connection for testing. The returned
// cleanup asserts that every expectation was met before closing.
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	}

	return db, mock, cleanup
}

// Columns of the tables the repositories scan, in select order
var (
	MenuItemColumns    = []string{"id", "name", "description", "price", "category", "image", "featured", "available", "spicy_level"}
	ReservationColumns = []string{"id", "name", "email", "phone", "date", "time", "guests", "special_requests", "status", "created_at"}
	MessageColumns     = []string{"id", "name", "email", "subject", "message", "status", "created_at"}
	UserColumns        = []string{"id", "name", "email", "password_hash", "role", "created_at"}
	ImageColumns       = []string{"id", "filename", "mimetype", "size", "data", "object_key", "url", "uploaded_at"}
	ContentColumns     = []string{"key", "value", "updated_at"}
	VisitorLogColumns  = []string{"id", "user_agent", "browser", "device_type", "os", "visited_at"}
)

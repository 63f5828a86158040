package database

import (
	"database/sql"
	"fmt"

	"github.com/oseiserwaa/kitchen/internal/database/schema"
)

// InitializeDatabase creates all tables and the track_visit function if they don't exist
func InitializeDatabase(db *sql.DB) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// CleanDatabase drops all tables in reverse order
func CleanDatabase(db *sql.DB) error {
	if _, err := db.Exec("DROP FUNCTION IF EXISTS track_visit"); err != nil {
		return fmt.Errorf("failed to drop track_visit: %w", err)
	}
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", schema.TableNames[i])
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", schema.TableNames[i], err)
		}
	}
	return nil
}

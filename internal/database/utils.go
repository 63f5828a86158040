package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/oseiserwaa/kitchen/config"
)

// GetConnectionPoolSettings returns connection pool settings based on environment
func GetConnectionPoolSettings() (maxOpen, maxIdle int, maxLifetime time.Duration) {
	if os.Getenv("ENVIRONMENT") == "test" || os.Getenv("INTEGRATION_TESTS") == "true" {
		return 5, 2, 2 * time.Minute
	}
	return 20, 10, 20 * time.Minute
}

func sslMode(cfg *config.DatabaseConfig) string {
	if cfg.SSLMode == "" {
		return "disable"
	}
	return cfg.SSLMode
}

// GetDSN returns the DSN for the application database
func GetDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		sslMode(cfg),
	)
}

// GetServerDSN returns the DSN for the server's maintenance database
func GetServerDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/postgres?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		sslMode(cfg),
	)
}

// EnsureDatabaseExists creates dbName through db when it is missing.
// db must be connected to another database of the same server.
func EnsureDatabaseExists(db *sql.DB, dbName string) error {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	createDBQuery := fmt.Sprintf(`CREATE DATABASE "%s"`, strings.ReplaceAll(dbName, `"`, `""`))
	if _, err := db.Exec(createDBQuery); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

// Connect makes sure the database exists, opens it and applies the schema.
// With traced set, the driver is wrapped with ocsql.
func Connect(cfg *config.DatabaseConfig, traced bool) (*sql.DB, error) {
	server, err := sql.Open("postgres", GetServerDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	err = server.Ping()
	if err == nil {
		err = EnsureDatabaseExists(server, cfg.DBName)
	}
	server.Close()
	if err != nil {
		return nil, err
	}

	driverName := "postgres"
	if traced {
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
	}

	db, err := sql.Open(driverName, GetDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := InitializeDatabase(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings()
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	db.SetConnMaxIdleTime(maxLifetime / 2)

	return db, nil
}

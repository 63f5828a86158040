package app

import (
	"database/sql"
	"fmt"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/database"
	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/repository"
	"github.com/oseiserwaa/kitchen/internal/repository/embedded"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

// OpenStorage connects the backend selected by STORAGE_DRIVER. The returned
// *sql.DB is the raw handle behind the storage, used for health checks and
// pool statistics; closing the storage closes it.
func OpenStorage(cfg *config.Config, log logger.Logger) (domain.Storage, *sql.DB, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		log.WithField("path", cfg.Storage.SQLitePath).Info("Opening embedded SQLite database")
		gdb, err := embedded.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		return embedded.NewStorage(gdb), sqlDB, nil

	case config.DriverPostgres:
		dbCfg := &cfg.Storage.Database
		log.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, dbname: %s",
			dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.SSLMode, dbCfg.DBName))

		db, err := database.Connect(dbCfg, cfg.Tracing.Enabled)
		if err != nil {
			return nil, nil, err
		}
		maxOpen, maxIdle, maxLifetime := database.GetConnectionPoolSettings()
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxIdle)
		db.SetConnMaxLifetime(maxLifetime)
		return repository.NewPostgresStorage(db), db, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver: %q", cfg.Storage.Driver)
}

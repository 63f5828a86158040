package repository

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

// psql is a Squirrel StatementBuilder configured for PostgreSQL
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// requireAffected turns a zero-row write into ErrNotFound
func requireAffected(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: entity, ID: id}
	}
	return nil
}

type postgresStorage struct {
	db           *sql.DB
	content      domain.ContentRepository
	menu         domain.MenuItemRepository
	categories   domain.CategoryRepository
	reservations domain.ReservationRepository
	messages     domain.MessageRepository
	users        domain.UserRepository
	images       domain.ImageRepository
	visitors     domain.VisitorRepository
}

// NewPostgresStorage builds every repository on top of one connection pool
func NewPostgresStorage(db *sql.DB) domain.Storage {
	return &postgresStorage{
		db:           db,
		content:      NewContentRepository(db),
		menu:         NewMenuItemRepository(db),
		categories:   NewCategoryRepository(db),
		reservations: NewReservationRepository(db),
		messages:     NewMessageRepository(db),
		users:        NewUserRepository(db),
		images:       NewImageRepository(db),
		visitors:     NewVisitorRepository(db),
	}
}

func (s *postgresStorage) Content() domain.ContentRepository         { return s.content }
func (s *postgresStorage) Menu() domain.MenuItemRepository           { return s.menu }
func (s *postgresStorage) Categories() domain.CategoryRepository     { return s.categories }
func (s *postgresStorage) Reservations() domain.ReservationRepository { return s.reservations }
func (s *postgresStorage) Messages() domain.MessageRepository        { return s.messages }
func (s *postgresStorage) Users() domain.UserRepository              { return s.users }
func (s *postgresStorage) Images() domain.ImageRepository            { return s.images }
func (s *postgresStorage) Visitors() domain.VisitorRepository        { return s.visitors }

func (s *postgresStorage) Close() error {
	return s.db.Close()
}

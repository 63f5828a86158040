package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

var menuItemColumns = []string{"id", "name", "description", "price", "category", "image", "featured", "available", "spicy_level"}

type menuItemRepository struct {
	db *sql.DB
}

// NewMenuItemRepository creates a new PostgreSQL menu repository
func NewMenuItemRepository(db *sql.DB) domain.MenuItemRepository {
	return &menuItemRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.Image,
		&item.Featured,
		&item.Available,
		&item.SpicyLevel,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	query, args, err := psql.Select(menuItemColumns...).
		From("menu_items").
		OrderBy("created_at ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items := []*domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}
	return items, nil
}

func (r *menuItemRepository) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	query, args, err := psql.Select(menuItemColumns...).
		From("menu_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	item, err := scanMenuItem(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "menu item", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (r *menuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	query, args, err := psql.Insert("menu_items").
		Columns(menuItemColumns...).
		Values(item.ID, item.Name, item.Description, item.Price, item.Category, item.Image, item.Featured, item.Available, item.SpicyLevel).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *menuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	query, args, err := psql.Update("menu_items").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("category", item.Category).
		Set("image", item.Image).
		Set("featured", item.Featured).
		Set("available", item.Available).
		Set("spicy_level", item.SpicyLevel).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	return requireAffected(result, "menu item", item.ID)
}

func (r *menuItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return requireAffected(result, "menu item", id)
}

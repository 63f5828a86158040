package embedded

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type menuItemRepository struct {
	db *gorm.DB
}

func (row *menuItemRow) toDomain() *domain.MenuItem {
	return &domain.MenuItem{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Category:    row.Category,
		Image:       row.Image,
		Featured:    row.Featured,
		Available:   row.Available,
		SpicyLevel:  row.SpicyLevel,
	}
}

func (r *menuItemRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	var rows []menuItemRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("rowid ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	items := make([]*domain.MenuItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toDomain()
	}
	return items, nil
}

func (r *menuItemRepository) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	var row menuItemRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.ErrNotFound{Entity: "menu item", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return row.toDomain(), nil
}

func (r *menuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	row := menuItemRow{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Image:       item.Image,
		Featured:    item.Featured,
		Available:   item.Available,
		SpicyLevel:  item.SpicyLevel,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *menuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	result := r.db.WithContext(ctx).Model(&menuItemRow{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"category":    item.Category,
		"image":       item.Image,
		"featured":    item.Featured,
		"available":   item.Available,
		"spicy_level": item.SpicyLevel,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update menu item: %w", result.Error)
	}
	return requireAffected(result, "menu item", item.ID)
}

func (r *menuItemRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&menuItemRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	return requireAffected(result, "menu item", id)
}

type categoryRepository struct {
	db *gorm.DB
}

func (row *categoryRow) toDomain() *domain.Category {
	return &domain.Category{ID: row.ID, Name: row.Name, Description: row.Description, DisplayOrder: row.DisplayOrder}
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var rows []categoryRow
	if err := r.db.WithContext(ctx).Order("display_order ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories := make([]*domain.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].toDomain()
	}
	return categories, nil
}

func (r *categoryRepository) Get(ctx context.Context, id string) (*domain.Category, error) {
	var row categoryRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.ErrNotFound{Entity: "category", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return row.toDomain(), nil
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	row := categoryRow{ID: c.ID, Name: c.Name, Description: c.Description, DisplayOrder: c.DisplayOrder}
	err := r.db.WithContext(ctx).Create(&row).Error
	if isUniqueViolation(err) {
		return domain.NewValidationError(fmt.Sprintf("category %s already exists", c.ID))
	}
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	result := r.db.WithContext(ctx).Model(&categoryRow{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":          c.Name,
		"description":   c.Description,
		"display_order": c.DisplayOrder,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	return requireAffected(result, "category", c.ID)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&categoryRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	return requireAffected(result, "category", id)
}

package embedded

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type contentRepository struct {
	db *gorm.DB
}

func toDocument(row *contentRow) *domain.ContentDocument {
	return &domain.ContentDocument{Key: row.Key, Value: json.RawMessage(row.Value), UpdatedAt: row.UpdatedAt}
}

func (r *contentRepository) Get(ctx context.Context, key string) (*domain.ContentDocument, error) {
	return getContent(r.db.WithContext(ctx), key)
}

func getContent(db *gorm.DB, key string) (*domain.ContentDocument, error) {
	var row contentRow
	err := db.Where(&contentRow{Key: key}).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.ErrContentNotFound{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return toDocument(&row), nil
}

// Save upserts the document first, then replaces the collections, in one
// transaction
func (r *contentRepository) Save(ctx context.Context, doc *domain.ContentDocument, collections map[string][]json.RawMessage) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := contentRow{Key: doc.Key, Value: string(doc.Value), UpdatedAt: doc.UpdatedAt}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to save content: %w", err)
		}
		return replaceCollections(tx, doc.Key, collections)
	})
}

func (r *contentRepository) SaveIfAbsent(ctx context.Context, doc *domain.ContentDocument, collections map[string][]json.RawMessage) (bool, error) {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	written := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := contentRow{Key: doc.Key, Value: string(doc.Value), UpdatedAt: doc.UpdatedAt}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if result.Error != nil {
			return fmt.Errorf("failed to save content: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		written = true
		return replaceCollections(tx, doc.Key, collections)
	})
	if err != nil {
		return false, err
	}
	return written, nil
}

func replaceCollections(tx *gorm.DB, key string, collections map[string][]json.RawMessage) error {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := tx.Where(&contentItemRow{ContentKey: key, Collection: name}).Delete(&contentItemRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s.%s: %w", key, name, err)
		}

		items := collections[name]
		if len(items) == 0 {
			continue
		}
		rows := make([]contentItemRow, len(items))
		for i, item := range items {
			rows[i] = contentItemRow{ContentKey: key, Collection: name, Position: i, Item: string(item)}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert %s.%s: %w", key, name, err)
		}
	}
	return nil
}

func (r *contentRepository) Snapshot(ctx context.Context, key string, collections []string) (*domain.ContentDocument, map[string][]json.RawMessage, error) {
	var doc *domain.ContentDocument
	items := make(map[string][]json.RawMessage, len(collections))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if doc, err = getContent(tx, key); err != nil {
			return err
		}
		for _, name := range collections {
			if items[name], err = listItems(tx, key, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, items, nil
}

func (r *contentRepository) ListItems(ctx context.Context, key, collection string) ([]json.RawMessage, error) {
	return listItems(r.db.WithContext(ctx), key, collection)
}

func listItems(db *gorm.DB, key, collection string) ([]json.RawMessage, error) {
	var rows []contentItemRow
	err := db.
		Where(&contentItemRow{ContentKey: key, Collection: collection}).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}

	items := make([]json.RawMessage, len(rows))
	for i, row := range rows {
		items[i] = json.RawMessage(row.Item)
	}
	return items, nil
}

func (r *contentRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(&contentRow{Key: key}).Delete(&contentRow{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete content: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &domain.ErrContentNotFound{Key: key}
		}
		if err := tx.Where(&contentItemRow{ContentKey: key}).Delete(&contentItemRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete content items: %w", err)
		}
		return nil
	})
}

func (r *contentRepository) List(ctx context.Context) ([]*domain.ContentDocument, error) {
	var rows []contentRow
	if err := r.db.WithContext(ctx).Order("content_key ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	docs := make([]*domain.ContentDocument, len(rows))
	for i := range rows {
		docs[i] = toDocument(&rows[i])
	}
	return docs, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.opencensus.io/trace"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
)

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new PostgreSQL content repository
func NewContentRepository(db *sql.DB) domain.ContentRepository {
	return &contentRepository{db: db}
}

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *contentRepository) Get(ctx context.Context, key string) (*domain.ContentDocument, error) {
	return getContent(ctx, r.db, key)
}

func getContent(ctx context.Context, q querier, key string) (*domain.ContentDocument, error) {
	var doc domain.ContentDocument
	var value []byte
	err := q.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM site_content WHERE key = $1`, key,
	).Scan(&doc.Key, &value, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrContentNotFound{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	doc.Value = json.RawMessage(value)
	return &doc, nil
}

const upsertContentQuery = `
	INSERT INTO site_content (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
`

// Save writes the document row before touching the collections so the row
// lock it takes serializes concurrent saves of the same key
func (r *contentRepository) Save(ctx context.Context, doc *domain.ContentDocument, collections map[string][]json.RawMessage) error {
	ctx, span := tracing.StartServiceSpan(ctx, "ContentRepository", "Save")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("content.key", doc.Key))

	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertContentQuery, doc.Key, []byte(doc.Value), doc.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save content: %w", err)
	}

	if err := replaceCollections(ctx, tx, doc.Key, collections); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content: %w", err)
	}
	return nil
}

func (r *contentRepository) SaveIfAbsent(ctx context.Context, doc *domain.ContentDocument, collections map[string][]json.RawMessage) (bool, error) {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO site_content (key, value, updated_at) VALUES ($1, $2, $3) ON CONFLICT (key) DO NOTHING`,
		doc.Key, []byte(doc.Value), doc.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save content: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	if err := replaceCollections(ctx, tx, doc.Key, collections); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit content: %w", err)
	}
	return true, nil
}

func replaceCollections(ctx context.Context, tx *sql.Tx, key string, collections map[string][]json.RawMessage) error {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM site_content_items WHERE content_key = $1 AND collection = $2`, key, name,
		); err != nil {
			return fmt.Errorf("failed to clear %s.%s: %w", key, name, err)
		}

		items := collections[name]
		if len(items) == 0 {
			continue
		}

		insert := psql.Insert("site_content_items").Columns("content_key", "collection", "position", "item")
		for i, item := range items {
			insert = insert.Values(key, name, i, []byte(item))
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s.%s: %w", key, name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert %s.%s: %w", key, name, err)
		}
	}
	return nil
}

// Snapshot runs under REPEATABLE READ so every query sees the same committed state
func (r *contentRepository) Snapshot(ctx context.Context, key string, collections []string) (*domain.ContentDocument, map[string][]json.RawMessage, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	doc, err := getContent(ctx, tx, key)
	if err != nil {
		return nil, nil, err
	}
	items := make(map[string][]json.RawMessage, len(collections))
	for _, name := range collections {
		if items[name], err = listItems(ctx, tx, key, name); err != nil {
			return nil, nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit content read: %w", err)
	}
	return doc, items, nil
}

func (r *contentRepository) ListItems(ctx context.Context, key, collection string) ([]json.RawMessage, error) {
	return listItems(ctx, r.db, key, collection)
}

func listItems(ctx context.Context, q querier, key, collection string) ([]json.RawMessage, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT item FROM site_content_items WHERE content_key = $1 AND collection = $2 ORDER BY position`,
		key, collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}
	defer rows.Close()

	items := []json.RawMessage{}
	for rows.Next() {
		var item []byte
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		items = append(items, json.RawMessage(item))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content items: %w", err)
	}
	return items, nil
}

func (r *contentRepository) Delete(ctx context.Context, key string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM site_content WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrContentNotFound{Key: key}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM site_content_items WHERE content_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete content items: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content delete: %w", err)
	}
	return nil
}

func (r *contentRepository) List(ctx context.Context) ([]*domain.ContentDocument, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM site_content ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	docs := []*domain.ContentDocument{}
	for rows.Next() {
		var doc domain.ContentDocument
		var value []byte
		if err := rows.Scan(&doc.Key, &value, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		doc.Value = json.RawMessage(value)
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content: %w", err)
	}
	return docs, nil
}

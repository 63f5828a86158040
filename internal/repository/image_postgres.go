package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type imageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new PostgreSQL image repository
func NewImageRepository(db *sql.DB) domain.ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Get(ctx context.Context, id string) (*domain.UploadedImage, error) {
	var img domain.UploadedImage
	err := r.db.QueryRowContext(ctx, `
		SELECT id, filename, mimetype, size, data, object_key, url, uploaded_at
		FROM images
		WHERE id = $1
	`, id).Scan(&img.ID, &img.Filename, &img.MimeType, &img.Size, &img.Data, &img.ObjectKey, &img.URL, &img.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "image", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &img, nil
}

func (r *imageRepository) Create(ctx context.Context, img *domain.UploadedImage) error {
	if img.ID == "" {
		img.ID = uuid.New().String()
	}
	if img.UploadedAt.IsZero() {
		img.UploadedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO images (id, filename, mimetype, size, data, object_key, url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, img.ID, img.Filename, img.MimeType, img.Size, img.Data, img.ObjectKey, img.URL, img.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

func (r *imageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return requireAffected(result, "image", id)
}

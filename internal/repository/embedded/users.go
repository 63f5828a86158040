package embedded

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type userRepository struct {
	db *gorm.DB
}

func (row *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		CreatedAt:    row.CreatedAt,
	}
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("rowid ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*domain.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toDomain()
	}
	return users, nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where(column+" = ?", value).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.ErrNotFound{Entity: "user", ID: value}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	row := userRow{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if isUniqueViolation(err) {
		return &domain.ErrUserAlreadyExists{Email: user.Email}
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	return requireAffected(result, "user", id)
}

type imageRepository struct {
	db *gorm.DB
}

func (r *imageRepository) Get(ctx context.Context, id string) (*domain.UploadedImage, error) {
	var row imageRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.ErrNotFound{Entity: "image", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &domain.UploadedImage{
		ID:         row.ID,
		Filename:   row.Filename,
		MimeType:   row.MimeType,
		Size:       row.Size,
		Data:       row.Data,
		ObjectKey:  row.ObjectKey,
		URL:        row.URL,
		UploadedAt: row.UploadedAt,
	}, nil
}

func (r *imageRepository) Create(ctx context.Context, img *domain.UploadedImage) error {
	if img.ID == "" {
		img.ID = uuid.New().String()
	}
	if img.UploadedAt.IsZero() {
		img.UploadedAt = time.Now().UTC()
	}
	row := imageRow{
		ID:         img.ID,
		Filename:   img.Filename,
		MimeType:   img.MimeType,
		Size:       img.Size,
		Data:       img.Data,
		ObjectKey:  img.ObjectKey,
		URL:        img.URL,
		UploadedAt: img.UploadedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

func (r *imageRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&imageRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete image: %w", result.Error)
	}
	return requireAffected(result, "image", id)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
)

const DefaultMaxImageBytes = 5 << 20

type ImageService struct {
	repo     domain.ImageRepository
	blobs    domain.ImageBlobStore
	maxBytes int64
	logger   logger.Logger
}

func NewImageService(repo domain.ImageRepository, blobs domain.ImageBlobStore, maxBytes int64, logger logger.Logger) *ImageService {
	if blobs == nil {
		blobs = InlineBlobStore{}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageService{repo: repo, blobs: blobs, maxBytes: maxBytes, logger: logger}
}

func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

func (s *ImageService) Upload(ctx context.Context, filename, mimeType string, data []byte) (*domain.UploadedImage, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ImageService", "Upload")
	defer span.End()

	if len(data) == 0 {
		return nil, domain.NewValidationError("No image file provided")
	}
	if !strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return nil, domain.NewValidationError("Only image files are allowed")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("image exceeds the %d byte limit", s.maxBytes))
	}

	img := &domain.UploadedImage{
		ID:         uuid.New().String(),
		Filename:   filename,
		MimeType:   mimeType,
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC(),
	}
	tracing.AddAttribute(ctx, "image_size", img.Size)

	if err := s.blobs.Store(ctx, img, data); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("image_id", img.ID).Error(fmt.Sprintf("Failed to store image: %v", err))
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	if err := s.repo.Create(ctx, img); err != nil {
		s.logger.WithField("image_id", img.ID).Error(fmt.Sprintf("Failed to create image: %v", err))
		if rmErr := s.blobs.Remove(ctx, img); rmErr != nil {
			s.logger.WithField("image_id", img.ID).Warn(fmt.Sprintf("Failed to clean up image object: %v", rmErr))
		}
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return img, nil
}

func (s *ImageService) Get(ctx context.Context, id string) (*domain.ImageView, error) {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("image_id", id).Error(fmt.Sprintf("Failed to get image: %v", err))
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return img.View(), nil
}

// Delete drops the row, then the stored object. A leftover object is only
// logged.
func (s *ImageService) Delete(ctx context.Context, id string) error {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("image_id", id).Error(fmt.Sprintf("Failed to get image: %v", err))
		return fmt.Errorf("failed to get image: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("image_id", id).Error(fmt.Sprintf("Failed to delete image: %v", err))
		return fmt.Errorf("failed to delete image: %w", err)
	}

	if err := s.blobs.Remove(ctx, img); err != nil {
		s.logger.WithField("image_id", id).Warn(fmt.Sprintf("Failed to remove image object: %v", err))
	}
	return nil
}

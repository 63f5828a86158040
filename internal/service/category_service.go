package service

import (
	"context"
	"fmt"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
)

type CategoryService struct {
	repo   domain.CategoryRepository
	logger logger.Logger
}

func NewCategoryService(repo domain.CategoryRepository, logger logger.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := tracing.TraceMethodWithResult(ctx, "CategoryService", "List", s.repo.List)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list categories: %v", err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, in *domain.CategoryInput) (*domain.Category, error) {
	category, err := in.NewCategory()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if domain.IsValidationError(err) {
			return nil, err
		}
		s.logger.WithField("category_id", category.ID).Error(fmt.Sprintf("Failed to create category: %v", err))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in *domain.CategoryInput) (*domain.Category, error) {
	category, err := s.repo.Get(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("category_id", id).Error(fmt.Sprintf("Failed to get category: %v", err))
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if err := in.ApplyTo(category); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("category_id", id).Error(fmt.Sprintf("Failed to update category: %v", err))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete removes the category only; menu items keep their category id
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("category_id", id).Error(fmt.Sprintf("Failed to delete category: %v", err))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

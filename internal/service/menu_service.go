package service

import (
	"context"
	"fmt"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
)

type MenuService struct {
	repo   domain.MenuItemRepository
	logger logger.Logger
}

func NewMenuService(repo domain.MenuItemRepository, logger logger.Logger) *MenuService {
	return &MenuService{repo: repo, logger: logger}
}

func (s *MenuService) List(ctx context.Context) ([]*domain.MenuItem, error) {
	items, err := tracing.TraceMethodWithResult(ctx, "MenuService", "List", s.repo.List)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list menu items: %v", err))
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

func (s *MenuService) Create(ctx context.Context, in *domain.MenuItemInput) (*domain.MenuItem, error) {
	item, err := in.NewMenuItem()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.WithField("menu_item_name", item.Name).Error(fmt.Sprintf("Failed to create menu item: %v", err))
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

// Update merges the supplied fields onto the stored item
func (s *MenuService) Update(ctx context.Context, id string, in *domain.MenuItemInput) (*domain.MenuItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("menu_item_id", id).Error(fmt.Sprintf("Failed to get menu item: %v", err))
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	if err := in.ApplyTo(item); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("menu_item_id", id).Error(fmt.Sprintf("Failed to update menu item: %v", err))
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("menu_item_id", id).Error(fmt.Sprintf("Failed to delete menu item: %v", err))
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}

package domain

import (
	"context"
	"regexp"
	"strings"
)

//go:generate mockgen -destination mocks/mock_category_repository.go -package mocks github.com/oseiserwaa/kitchen/internal/domain CategoryRepository

// DefaultDisplayOrder sorts categories created without an order last
const DefaultDisplayOrder = 99

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

type CategoryInput struct {
	ID           *string `json:"id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lowercases name and replaces whitespace runs with a dash
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// NewCategory builds a category from a create request. The id falls back to
// the slug of the name.
func (in *CategoryInput) NewCategory() (*Category, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, NewValidationError("name is required")
	}

	c := &Category{DisplayOrder: DefaultDisplayOrder}
	if in.ID != nil && strings.TrimSpace(*in.ID) != "" {
		c.ID = strings.TrimSpace(*in.ID)
	} else {
		c.ID = Slugify(*in.Name)
	}
	if err := in.ApplyTo(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyTo merges the supplied fields. The id is immutable.
func (in *CategoryInput) ApplyTo(c *Category) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return NewValidationError("name cannot be empty")
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.DisplayOrder != nil {
		c.DisplayOrder = *in.DisplayOrder
	}
	return nil
}

// CategoryRepository lists by display_order, then name
type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}

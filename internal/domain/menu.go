package domain

import (
	"context"
	"encoding/json"
	"strings"
)

//go:generate mockgen -destination mocks/mock_menu_repository.go -package mocks github.com/oseiserwaa/kitchen/internal/domain MenuItemRepository

// MenuItem is a dish shown on the public menu
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Featured    bool    `json:"featured"`
	Available   bool    `json:"available"`
	SpicyLevel  int     `json:"spicyLevel"`
}

// MarshalJSON adds categoryId, which the site reads interchangeably with category
func (m MenuItem) MarshalJSON() ([]byte, error) {
	type plain MenuItem
	return json.Marshal(struct {
		plain
		CategoryID string `json:"categoryId"`
	}{plain(m), m.Category})
}

// MenuItemInput is the body of create and update calls. Nil fields were not
// sent by the client.
type MenuItemInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	CategoryID  *string  `json:"categoryId"`
	Image       *string  `json:"image"`
	ImageURL    *string  `json:"image_url"`
	Featured    *bool    `json:"featured"`
	Available   *bool    `json:"available"`
	SpicyLevel  *int     `json:"spicyLevel"`
}

// NewMenuItem builds an item from a create request. Available defaults to true.
func (in *MenuItemInput) NewMenuItem() (*MenuItem, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, NewValidationError("name is required")
	}
	if in.Price == nil {
		return nil, NewValidationError("price is required")
	}

	item := &MenuItem{Available: true}
	if err := in.ApplyTo(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ApplyTo merges the supplied fields onto item, leaving the others untouched
func (in *MenuItemInput) ApplyTo(item *MenuItem) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return NewValidationError("name cannot be empty")
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return NewValidationError("price must be zero or greater")
		}
		item.Price = *in.Price
	}
	switch {
	case in.Category != nil:
		item.Category = *in.Category
	case in.CategoryID != nil:
		item.Category = *in.CategoryID
	}
	switch {
	case in.Image != nil:
		item.Image = *in.Image
	case in.ImageURL != nil:
		item.Image = *in.ImageURL
	}
	if in.Featured != nil {
		item.Featured = *in.Featured
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.SpicyLevel != nil {
		if *in.SpicyLevel < 0 {
			return NewValidationError("spicyLevel must be zero or greater")
		}
		item.SpicyLevel = *in.SpicyLevel
	}
	return nil
}

type MenuItemRepository interface {
	List(ctx context.Context) ([]*MenuItem, error)
	Get(ctx context.Context, id string) (*MenuItem, error)
	Create(ctx context.Context, item *MenuItem) error
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id string) error
}

package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/domain/mocks"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockMenuService(ctrl)
	router := newTestRouter(NewMenuHandler(svc, logger.NewTestLogger(t)))

	t.Run("list is public", func(t *testing.T) {
		svc.EXPECT().List(gomock.Any()).Return([]*domain.MenuItem{
			{ID: "m1", Name: "Jollof Rice", Price: 12.5, Category: "mains", Available: true},
		}, nil)

		w := do(router, http.MethodGet, "/api/menu", nil, false)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"categoryId":"mains"`)
		assert.Contains(t, w.Body.String(), `"price":12.5`)
	})

	t.Run("list failure echoes the error", func(t *testing.T) {
		svc.EXPECT().List(gomock.Any()).Return(nil, errors.New("failed to list menu items: db down"))

		w := do(router, http.MethodGet, "/api/menu", nil, false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "failed to list menu items: db down", decodeMap(t, w)["error"])
	})

	t.Run("create requires a token", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/menu", jsonBody(t, map[string]interface{}{"name": "Kelewele"}), false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ interface{}, in *domain.MenuItemInput) (*domain.MenuItem, error) {
			require.NotNil(t, in.Name)
			assert.Equal(t, "Kelewele", *in.Name)
			assert.Nil(t, in.Available)
			return &domain.MenuItem{ID: "m2", Name: "Kelewele", Price: 4, Available: true}, nil
		})

		w := do(router, http.MethodPost, "/api/menu", jsonBody(t, map[string]interface{}{"name": "Kelewele", "price": 4}), true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "m2", decodeMap(t, w)["id"])
	})

	t.Run("non numeric price is rejected before the service", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/menu", jsonBody(t, `{"name":"Waakye","price":"ten"}`), true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.NewValidationError("price must not be negative"))

		w := do(router, http.MethodPost, "/api/menu", jsonBody(t, map[string]interface{}{"name": "X", "price": -1}), true)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "price must not be negative", decodeMap(t, w)["error"])
	})

	t.Run("update", func(t *testing.T) {
		svc.EXPECT().Update(gomock.Any(), "m1", gomock.Any()).Return(&domain.MenuItem{ID: "m1", Name: "Jollof", Price: 14}, nil)

		w := do(router, http.MethodPut, "/api/menu/m1", jsonBody(t, map[string]interface{}{"price": 14}), true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Updated successfully", decodeMap(t, w)["message"])
	})

	t.Run("update missing item", func(t *testing.T) {
		svc.EXPECT().Update(gomock.Any(), "nope", gomock.Any()).Return(nil, &domain.ErrNotFound{Entity: "menu item", ID: "nope"})

		w := do(router, http.MethodPut, "/api/menu/nope", jsonBody(t, map[string]interface{}{"price": 1}), true)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Menu item not found", decodeMap(t, w)["error"])
	})

	t.Run("delete", func(t *testing.T) {
		svc.EXPECT().Delete(gomock.Any(), "m1").Return(nil)

		w := do(router, http.MethodDelete, "/api/menu/m1", nil, true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Deleted successfully", decodeMap(t, w)["message"])
	})
}

func TestCategoryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockCategoryService(ctrl)
	router := newTestRouter(NewCategoryHandler(svc, logger.NewTestLogger(t)))

	t.Run("list", func(t *testing.T) {
		svc.EXPECT().List(gomock.Any()).Return([]*domain.Category{
			{ID: "starters", Name: "Starters", DisplayOrder: 1},
			{ID: "mains", Name: "Mains", DisplayOrder: 2},
		}, nil)

		w := do(router, http.MethodGet, "/api/categories", nil, false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"display_order":1`)
	})

	t.Run("create", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Category{ID: "soups", Name: "Soups", DisplayOrder: 99}, nil)

		w := do(router, http.MethodPost, "/api/categories", jsonBody(t, map[string]interface{}{"name": "Soups"}), true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "soups", decodeMap(t, w)["id"])
	})

	t.Run("update", func(t *testing.T) {
		svc.EXPECT().Update(gomock.Any(), "soups", gomock.Any()).Return(&domain.Category{ID: "soups", Name: "Light Soups"}, nil)

		w := do(router, http.MethodPut, "/api/categories/soups", jsonBody(t, map[string]interface{}{"name": "Light Soups"}), true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Category updated successfully", decodeMap(t, w)["message"])
	})

	t.Run("delete without token", func(t *testing.T) {
		w := do(router, http.MethodDelete, "/api/categories/soups", nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

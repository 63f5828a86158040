package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/repository/testutil"
)

var categoryColumns = []string{"id", "name", "description", "display_order"}

func TestCategoryRepository_List(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(`SELECT id, name, description, display_order\s+FROM categories\s+ORDER BY display_order ASC, name ASC`).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow("starters", "Starters", "Small bites", 1).
			AddRow("mains", "Mains", "Hearty plates", 2))

	categories, err := repo.List(ctx())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "mains", categories[1].ID)
	assert.Equal(t, 2, categories[1].DisplayOrder)
}

func TestCategoryRepository_Get(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(`FROM categories WHERE id = \$1`).WithArgs("drinks").
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	_, err := repo.Get(ctx(), "drinks")
	assert.True(t, domain.IsNotFound(err))
}

func TestCategoryRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewCategoryRepository(db)

		mock.ExpectExec(`INSERT INTO categories`).
			WithArgs("soups", "Soups", "", 99).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx(), &domain.Category{ID: "soups", Name: "Soups", DisplayOrder: 99}))
	})

	t.Run("duplicate id", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewCategoryRepository(db)

		mock.ExpectExec(`INSERT INTO categories`).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx(), &domain.Category{ID: "soups", Name: "Soups"})
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestCategoryRepository_UpdateAndDelete(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewCategoryRepository(db)

	mock.ExpectExec(`UPDATE categories SET name = \$1, description = \$2, display_order = \$3 WHERE id = \$4`).
		WithArgs("Mains", "Hearty", 3, "mains").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Update(ctx(), &domain.Category{ID: "mains", Name: "Mains", Description: "Hearty", DisplayOrder: 3}))

	mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).WithArgs("mains").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, domain.IsNotFound(repo.Delete(ctx(), "mains")))
}

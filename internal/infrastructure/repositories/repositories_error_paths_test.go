package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
)

func registerFindErrorAfterCount(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	cbName := "test:find_error_after_count:" + table
	queryCount := 0
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register(cbName, func(tx *gorm.DB) {
		if tx.Statement != nil && tx.Statement.Table == table {
			queryCount++
			if queryCount > 1 {
				tx.AddError(gorm.ErrInvalidDB)
			}
		}
	}))
	t.Cleanup(func() { _ = db.Callback().Query().Remove(cbName) })
}

func TestCatalogRepository_ListFindErrorAfterCount(t *testing.T) {
	db := newTestDB(t)
	createCatalogTable(t, db)
	repo := NewCatalogRepository(db)

	registerFindErrorAfterCount(t, db, "catalog_entities")
	_, _, err := repo.List(context.Background(), entities.CatalogTypeCourse, 10, 0)
	require.Error(t, err)
}

func TestRepositories_MissingTables(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("catalog", func(t *testing.T) {
		repo := NewCatalogRepository(newTestDB(t))
		err := repo.Create(ctx, &entities.CatalogEntity{
			ID: uuid.New(), Type: entities.CatalogTypeCourse, Name: "Go", Slug: "go", Href: "/course/go",
			CreatedAt: now, UpdatedAt: now,
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, domainerrors.ErrDuplicateValue)

		_, err = repo.SlugExists(ctx, entities.CatalogTypeCourse, "go", nil)
		assert.Error(t, err)
	})

	t.Run("enrollment", func(t *testing.T) {
		repo := NewEnrollmentRepository(newTestDB(t))
		err := repo.Create(ctx, &entities.Enrollment{
			ID: uuid.New(), UserEmail: "a@learnpath.io", CourseType: entities.CatalogTypeCourse,
			CourseSlug: "go", Status: entities.EnrollmentStatusPending, Amount: 1, Currency: "INR",
		})
		require.Error(t, err)

		_, err = repo.ListByEmail(ctx, "a@learnpath.io")
		assert.Error(t, err)
	})

	t.Run("user", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))
		err := repo.Create(ctx, &entities.User{ID: uuid.New(), Email: "a@learnpath.io", Name: "A", Role: entities.UserRoleStudent})
		require.Error(t, err)

		_, err = repo.GetByEmail(ctx, "a@learnpath.io")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domainerrors.ErrNotFound)
	})
}

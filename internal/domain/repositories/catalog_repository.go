package repositories

import (
	"context"

	"github.com/google/uuid"
	"learnpath.backend/internal/domain/entities"
)

// CatalogRepository defines catalog entity data operations.
// Slugs are unique per catalog type; the storage layer enforces it.
type CatalogRepository interface {
	Create(ctx context.Context, entity *entities.CatalogEntity) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.CatalogEntity, error)
	GetBySlug(ctx context.Context, catalogType entities.CatalogType, slug string) (*entities.CatalogEntity, error)
	SlugExists(ctx context.Context, catalogType entities.CatalogType, slug string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, catalogType entities.CatalogType, limit, offset int) ([]*entities.CatalogEntity, int64, error)
	Update(ctx context.Context, entity *entities.CatalogEntity) error
}

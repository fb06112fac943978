package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/domain/repositories"
	"learnpath.backend/pkg/utils"
)

// CatalogUsecase creates, updates and reads catalog entities
type CatalogUsecase struct {
	catalogRepo repositories.CatalogRepository
	uow         repositories.UnitOfWork
	slugs       *SlugAllocator
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(catalogRepo repositories.CatalogRepository, uow repositories.UnitOfWork) *CatalogUsecase {
	return &CatalogUsecase{
		catalogRepo: catalogRepo,
		uow:         uow,
		slugs:       NewSlugAllocator(catalogRepo),
	}
}

// Create validates raw, derives a unique slug and href, inserts the entity
// once and returns the stored row. Storage uniqueness violations become 409.
func (u *CatalogUsecase) Create(ctx context.Context, catalogType entities.CatalogType, raw map[string]any) (*entities.CatalogEntity, error) {
	if !catalogType.IsValid() {
		return nil, domainerrors.NotFound("Unknown catalog type")
	}

	payload, err := ValidateCatalogPayload(CoerceCatalogPayload(raw))
	if err != nil {
		return nil, err
	}

	// Slug and href always follow the name on create; client values are replaced.
	base := NormalizeSlug(payload.Name)
	if base == "" {
		return nil, domainerrors.BadRequest("Name cannot be empty")
	}

	var created *entities.CatalogEntity
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		slug, err := u.slugs.Allocate(txCtx, catalogType, base, nil)
		if err != nil {
			return err
		}

		now := time.Now()
		entity := &entities.CatalogEntity{
			ID:        utils.GenerateUUIDv7(),
			Type:      catalogType,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyCatalogPayload(entity, payload)
		entity.Slug = slug
		entity.Href = entities.BuildHref(catalogType, slug)

		if err := u.catalogRepo.Create(txCtx, entity); err != nil {
			return err
		}
		created, err = u.catalogRepo.GetByID(txCtx, entity.ID)
		return err
	})
	if err != nil {
		return nil, catalogWriteError(err)
	}
	return created, nil
}

// Update replaces the fields of the entity at (type, slug). The slug only
// changes when the payload carries one, and is re-checked for uniqueness.
func (u *CatalogUsecase) Update(ctx context.Context, catalogType entities.CatalogType, slug string, raw map[string]any) (*entities.CatalogEntity, error) {
	if !catalogType.IsValid() {
		return nil, domainerrors.NotFound("Unknown catalog type")
	}

	payload, err := ValidateCatalogPayload(CoerceCatalogPayload(raw))
	if err != nil {
		return nil, err
	}

	var updated *entities.CatalogEntity
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.catalogRepo.GetBySlug(txCtx, catalogType, slug)
		if err != nil {
			return err
		}

		nextSlug := existing.Slug
		if payload.Slug != "" {
			base := NormalizeSlug(payload.Slug)
			if base == "" {
				return domainerrors.BadRequest("Slug cannot be empty")
			}
			nextSlug, err = u.slugs.Allocate(txCtx, catalogType, base, &existing.ID)
			if err != nil {
				return err
			}
		}

		applyCatalogPayload(existing, payload)
		existing.Slug = nextSlug
		existing.Href = entities.BuildHref(catalogType, nextSlug)
		existing.UpdatedAt = time.Now()

		if err := u.catalogRepo.Update(txCtx, existing); err != nil {
			return err
		}
		updated, err = u.catalogRepo.GetByID(txCtx, existing.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Catalog entity not found")
		}
		return nil, catalogWriteError(err)
	}
	return updated, nil
}

// Get returns one entity by type and slug
func (u *CatalogUsecase) Get(ctx context.Context, catalogType entities.CatalogType, slug string) (*entities.CatalogEntity, error) {
	entity, err := u.catalogRepo.GetBySlug(ctx, catalogType, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Catalog entity not found")
		}
		return nil, err
	}
	return entity, nil
}

// List returns entities of one type, newest first. Limit 0 returns everything.
func (u *CatalogUsecase) List(ctx context.Context, catalogType entities.CatalogType, pagination utils.PaginationParams) ([]*entities.CatalogEntity, utils.PaginationMeta, error) {
	items, total, err := u.catalogRepo.List(ctx, catalogType, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return items, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

func applyCatalogPayload(e *entities.CatalogEntity, p *entities.CatalogPayload) {
	e.Name = p.Name
	e.Img = p.Img
	e.Duration = p.Duration
	e.Level = p.Level
	e.Desc = p.Desc
	e.Skills = p.Skills
	e.Perks = p.Perks
	e.Syllabus = p.Syllabus
	e.Rating = null.Float64FromPtr(p.Rating)
	e.Students = null.Float64FromPtr(p.Students)
}

// DuplicateValueMessage renders the conflict message shown to clients.
func DuplicateValueMessage(fields []string) string {
	if len(fields) == 0 {
		return "Duplicate value. Try a different name."
	}
	return "Duplicate value (" + strings.Join(fields, ", ") + "). Try a different name."
}

func catalogWriteError(err error) error {
	if _, ok := domainerrors.As(err); ok {
		return err
	}
	var dupErr *domainerrors.DuplicateKeyError
	switch {
	case errors.As(err, &dupErr):
		return domainerrors.ConflictWithCause(DuplicateValueMessage(dupErr.Fields), err)
	case errors.Is(err, domainerrors.ErrSlugExhausted):
		return domainerrors.ConflictWithCause("Could not find a free slug. Try a different name.", err)
	case errors.Is(err, domainerrors.ErrEmptySlugBase):
		return domainerrors.BadRequest("Name cannot be empty")
	}
	return err
}

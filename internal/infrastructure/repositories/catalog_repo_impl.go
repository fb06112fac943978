package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/infrastructure/models"
)

// catalog slugs are unique per type, so type is not a useful conflict field.
const catalogScopeColumn = "type"

// CatalogRepository implements catalog entity data operations
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Create inserts a catalog entity. Unique violations surface as *DuplicateKeyError.
func (r *CatalogRepository) Create(ctx context.Context, entity *entities.CatalogEntity) error {
	m := toCatalogModel(entity)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err, catalogScopeColumn)
	}
	entity.CreatedAt = m.CreatedAt
	entity.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a catalog entity by ID
func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.CatalogEntity, error) {
	var m models.CatalogEntity
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toCatalogEntity(&m), nil
}

// GetBySlug gets a catalog entity by type and slug
func (r *CatalogRepository) GetBySlug(ctx context.Context, catalogType entities.CatalogType, slug string) (*entities.CatalogEntity, error) {
	var m models.CatalogEntity
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("type = ? AND slug = ?", string(catalogType), slug).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toCatalogEntity(&m), nil
}

// SlugExists reports whether slug is taken within catalogType, ignoring excludeID.
func (r *CatalogRepository) SlugExists(ctx context.Context, catalogType entities.CatalogType, slug string, excludeID *uuid.UUID) (bool, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.CatalogEntity{}).
		Where("type = ? AND slug = ?", string(catalogType), slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns entities of one type, newest first. limit <= 0 returns all rows.
func (r *CatalogRepository) List(ctx context.Context, catalogType entities.CatalogType, limit, offset int) ([]*entities.CatalogEntity, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.CatalogEntity{}).Where("type = ?", string(catalogType)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Where("type = ?", string(catalogType)).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var ms []models.CatalogEntity
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.CatalogEntity, 0, len(ms))
	for i := range ms {
		items = append(items, toCatalogEntity(&ms[i]))
	}
	return items, total, nil
}

// Update overwrites the mutable fields of an entity
func (r *CatalogRepository) Update(ctx context.Context, entity *entities.CatalogEntity) error {
	m := toCatalogModel(entity)
	updates := map[string]interface{}{
		"name":        m.Name,
		"img":         m.Img,
		"duration":    m.Duration,
		"level":       m.Level,
		"description": m.Desc,
		"skills":      m.Skills,
		"perks":       m.Perks,
		"syllabus":    m.Syllabus,
		"rating":      m.Rating,
		"students":    m.Students,
		"slug":        m.Slug,
		"href":        m.Href,
		"updated_at":  time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.CatalogEntity{}).
		Where("id = ? AND type = ?", entity.ID, string(entity.Type)).
		Updates(updates)
	if result.Error != nil {
		return translateWriteError(result.Error, catalogScopeColumn)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toCatalogModel(e *entities.CatalogEntity) *models.CatalogEntity {
	syllabus := make([]models.SyllabusSection, 0, len(e.Syllabus))
	for _, s := range e.Syllabus {
		syllabus = append(syllabus, models.SyllabusSection{Title: s.Title, Items: s.Items})
	}
	return &models.CatalogEntity{
		ID:        e.ID,
		Type:      string(e.Type),
		Name:      e.Name,
		Img:       e.Img,
		Duration:  e.Duration,
		Level:     string(e.Level),
		Desc:      e.Desc,
		Skills:    datatypes.JSONSlice[string](nonNilStrings(e.Skills)),
		Perks:     datatypes.JSONSlice[string](nonNilStrings(e.Perks)),
		Syllabus:  datatypes.JSONSlice[models.SyllabusSection](syllabus),
		Rating:    e.Rating.Ptr(),
		Students:  e.Students.Ptr(),
		Slug:      e.Slug,
		Href:      e.Href,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toCatalogEntity(m *models.CatalogEntity) *entities.CatalogEntity {
	syllabus := make([]entities.SyllabusSection, 0, len(m.Syllabus))
	for _, s := range m.Syllabus {
		syllabus = append(syllabus, entities.SyllabusSection{Title: s.Title, Items: s.Items})
	}
	return &entities.CatalogEntity{
		ID:        m.ID,
		Type:      entities.CatalogType(m.Type),
		Name:      m.Name,
		Img:       m.Img,
		Duration:  m.Duration,
		Level:     entities.Level(m.Level),
		Desc:      m.Desc,
		Skills:    nonNilStrings([]string(m.Skills)),
		Perks:     nonNilStrings([]string(m.Perks)),
		Syllabus:  syllabus,
		Rating:    null.Float64FromPtr(m.Rating),
		Students:  null.Float64FromPtr(m.Students),
		Slug:      m.Slug,
		Href:      m.Href,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

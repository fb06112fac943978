package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/infrastructure/models"
)

// EnrollmentRepository implements enrollment data operations
type EnrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *entities.Enrollment) error {
	m := &models.Enrollment{
		ID:         enrollment.ID,
		UserEmail:  enrollment.UserEmail,
		CourseType: string(enrollment.CourseType),
		CourseSlug: enrollment.CourseSlug,
		Status:     string(enrollment.Status),
		Amount:     enrollment.Amount,
		Currency:   enrollment.Currency,
		CreatedAt:  enrollment.CreatedAt,
		UpdatedAt:  enrollment.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	enrollment.CreatedAt = m.CreatedAt
	enrollment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Enrollment, error) {
	var m models.Enrollment
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEnrollmentEntity(&m), nil
}

// ListByEmail returns a student's enrollments, newest first
func (r *EnrollmentRepository) ListByEmail(ctx context.Context, email string) ([]*entities.Enrollment, error) {
	var ms []models.Enrollment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	items := make([]*entities.Enrollment, 0, len(ms))
	for i := range ms {
		items = append(items, toEnrollmentEntity(&ms[i]))
	}
	return items, nil
}

func toEnrollmentEntity(m *models.Enrollment) *entities.Enrollment {
	return &entities.Enrollment{
		ID:         m.ID,
		UserEmail:  m.UserEmail,
		CourseType: entities.CatalogType(m.CourseType),
		CourseSlug: m.CourseSlug,
		Status:     entities.EnrollmentStatus(m.Status),
		Amount:     m.Amount,
		Currency:   m.Currency,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

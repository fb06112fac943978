package repositories

import (
	"context"

	"github.com/google/uuid"
	"learnpath.backend/internal/domain/entities"
)

// EnrollmentRepository defines enrollment data operations
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entities.Enrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Enrollment, error)
	ListByEmail(ctx context.Context, email string) ([]*entities.Enrollment, error)
}

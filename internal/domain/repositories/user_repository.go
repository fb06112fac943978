package repositories

import (
	"context"

	"github.com/google/uuid"
	"learnpath.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// UpdateProfile overwrites the nested profile and display name in one statement.
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, profile *entities.UserProfile) error
}

package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"learnpath.backend/internal/domain/entities"
	"learnpath.backend/pkg/redis"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Create(ctx context.Context, entity *entities.CatalogEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.CatalogEntity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CatalogEntity), args.Error(1)
}

func (m *MockCatalogRepository) GetBySlug(ctx context.Context, catalogType entities.CatalogType, slug string) (*entities.CatalogEntity, error) {
	args := m.Called(ctx, catalogType, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CatalogEntity), args.Error(1)
}

func (m *MockCatalogRepository) SlugExists(ctx context.Context, catalogType entities.CatalogType, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, catalogType, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) List(ctx context.Context, catalogType entities.CatalogType, limit, offset int) ([]*entities.CatalogEntity, int64, error) {
	args := m.Called(ctx, catalogType, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.CatalogEntity), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogRepository) Update(ctx context.Context, entity *entities.CatalogEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

// Mock EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *entities.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) ListByEmail(ctx context.Context, email string) ([]*entities.Enrollment, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Enrollment), args.Error(1)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name string, profile *entities.UserProfile) error {
	args := m.Called(ctx, id, name, profile)
	return args.Error(0)
}

// Mock SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	args := m.Called(ctx, sessionID, data, expiration)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redis.SessionData), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/domain/repositories"
	"learnpath.backend/pkg/crypto"
	"learnpath.backend/pkg/jwt"
	"learnpath.backend/pkg/redis"
	"learnpath.backend/pkg/utils"
)

// SessionStore keeps server-side browser sessions
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var (
	hashPassword      = crypto.HashPassword
	generateSessionID = crypto.GenerateSessionID
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	sessions   SessionStore
}

// NewAuthUsecase creates a new auth usecase. sessions may be nil when Redis is off.
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService, sessions SessionStore) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Register creates a student account
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("Email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: passwordHash,
		Role:         entities.UserRoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, domainerrors.ErrDuplicateValue) {
			return nil, domainerrors.Conflict("Email already registered")
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns tokens, or a session ID when
// the caller asked for one and a session store is configured.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("Invalid email or password")
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if input.UseSession && u.sessions != nil {
		sessionID, err := generateSessionID()
		if err != nil {
			return nil, err
		}
		data := &redis.SessionData{
			UserID:       user.ID.String(),
			Email:        user.Email,
			Role:         string(user.Role),
			AccessToken:  tokenPair.AccessToken,
			RefreshToken: tokenPair.RefreshToken,
		}
		if err := u.sessions.CreateSession(ctx, sessionID, data, u.jwtService.RefreshExpiry()); err != nil {
			return nil, err
		}
		return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// Logout drops a server-side session. Unknown sessions are not an error.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if u.sessions == nil || sessionID == "" {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("Invalid refresh token")
	}

	// the account must still exist
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Invalid refresh token")
		}
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// ResolveSession turns a session ID into the caller identity
func (u *AuthUsecase) ResolveSession(ctx context.Context, sessionID string) (entities.Identity, error) {
	if u.sessions == nil {
		return entities.Identity{}, domainerrors.Unauthorized("Sessions are not enabled")
	}
	data, err := u.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return entities.Identity{}, domainerrors.Unauthorized("Session expired")
		}
		return entities.Identity{}, err
	}
	userID, ok := utils.ParseUUID(data.UserID)
	if !ok {
		return entities.Identity{}, domainerrors.Unauthorized("Invalid session")
	}
	return entities.Identity{UserID: userID, Email: data.Email, Role: data.Role}, nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleInstructor UserRole = "INSTRUCTOR"
	UserRoleStudent    UserRole = "STUDENT"
)

// User represents a user entity
type User struct {
	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"`
	Role         UserRole     `json:"role"`
	Profile      *UserProfile `json:"profile,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Identity is the caller resolved once per request by the auth middleware
// and passed explicitly into usecases.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IsZero reports whether no caller was resolved.
func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

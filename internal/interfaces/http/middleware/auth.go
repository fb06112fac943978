package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/interfaces/http/response"
	"learnpath.backend/pkg/jwt"
	"learnpath.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries a server-side session ID instead of a token
	SessionHeader = "X-Session-ID"
	// IdentityKey is the gin context key for the resolved caller
	IdentityKey = "identity"
)

// SessionResolver turns a session ID into the caller identity
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (entities.Identity, error)
}

var errNoCredentials = errors.New("no credentials")

// AuthMiddleware rejects requests without a valid bearer token or session.
// sessions may be nil, in which case only bearer tokens are accepted.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolveIdentity(c, jwtService, sessions)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when credentials are sent and
// lets the request through either way. Handlers decide via GetIdentity.
func OptionalAuthMiddleware(jwtService *jwt.JWTService, sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolveIdentity(c, jwtService, sessions)
		if err == nil {
			setIdentity(c, identity)
		} else if !errors.Is(err, errNoCredentials) {
			logger.Debug(c.Request.Context(), "Ignoring invalid credentials", zap.Error(err))
		}
		c.Next()
	}
}

// GetIdentity returns the caller resolved by the auth middleware
func GetIdentity(c *gin.Context) (entities.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return entities.Identity{}, false
	}
	identity, ok := v.(entities.Identity)
	if !ok || identity.IsZero() {
		return entities.Identity{}, false
	}
	return identity, true
}

func resolveIdentity(c *gin.Context, jwtService *jwt.JWTService, sessions SessionResolver) (entities.Identity, error) {
	if sessionID := strings.TrimSpace(c.GetHeader(SessionHeader)); sessionID != "" && sessions != nil {
		return sessions.ResolveSession(c.Request.Context(), sessionID)
	}

	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return entities.Identity{}, errNoCredentials
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return entities.Identity{}, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>")
	}

	claims, err := jwtService.ValidateAccessToken(strings.TrimPrefix(authHeader, BearerPrefix))
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return entities.Identity{}, domainerrors.Unauthorized("Token has expired")
		}
		return entities.Identity{}, domainerrors.Unauthorized("Invalid token")
	}
	return entities.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

func setIdentity(c *gin.Context, identity entities.Identity) {
	c.Set(IdentityKey, identity)
	ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, identity.UserID.String())
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, err error) {
	if errors.Is(err, errNoCredentials) {
		response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Authorization header is required")
		return
	}
	appErr, ok := domainerrors.As(err)
	if !ok || appErr.Status >= http.StatusInternalServerError {
		response.Error(c, err)
		c.Abort()
		return
	}
	logger.Warn(c.Request.Context(), "Authentication failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("reason", appErr.Message),
	)
	response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, appErr.Message)
}

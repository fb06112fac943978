package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/interfaces/http/middleware"
	"learnpath.backend/internal/interfaces/http/response"
	"learnpath.backend/pkg/jwt"
	"learnpath.backend/pkg/logger"
)

const (
	tokenCookie        = "token"
	refreshTokenCookie = "refresh_token"
	sessionCookie      = "session_id"
)

// AuthService is what AuthHandler needs from the auth usecase
type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    publicUser(user),
	})
}

// Login handles user login. With useSession the tokens stay server side
// and only the session id is returned.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authService.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if auth.SessionID != "" {
		c.SetCookie(sessionCookie, auth.SessionID, 3600*24*7, "/", "", false, true)
		response.Success(c, http.StatusOK, gin.H{
			"sessionId": auth.SessionID,
			"user":      publicUser(auth.User),
		})
		return
	}

	c.SetCookie(tokenCookie, auth.AccessToken, 3600*24, "/", "", false, true)
	c.SetCookie(refreshTokenCookie, auth.RefreshToken, 3600*24*7, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  auth.AccessToken,
		"refreshToken": auth.RefreshToken,
		"user":         publicUser(auth.User),
	})
}

// Logout drops the server side session, if any, and clears cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetHeader(middleware.SessionHeader)
	if sessionID == "" {
		sessionID, _ = c.Cookie(sessionCookie)
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}

	for _, name := range []string{tokenCookie, refreshTokenCookie, sessionCookie} {
		c.SetCookie(name, "", -1, "/", "", false, true)
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

// RefreshToken reads the refresh token from the body, falling back to the cookie
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var refreshToken string

	if c.Request.ContentLength > 0 {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&input); err == nil {
			refreshToken = input.RefreshToken
		} else {
			logger.Debug(c.Request.Context(), "Refresh body not bound", zap.Error(err))
		}
	}
	if refreshToken == "" {
		if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
			refreshToken = cookie
		}
	}
	if refreshToken == "" {
		response.Error(c, domainerrors.BadRequest("Refresh token is required"))
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(tokenCookie, pair.AccessToken, 3600*24, "/", "", false, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken, 3600*24*7, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// GetMe returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": publicUser(user)})
}

func publicUser(u *entities.User) gin.H {
	if u == nil {
		return nil
	}
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
}

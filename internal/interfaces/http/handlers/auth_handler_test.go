package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/interfaces/http/middleware"
	"learnpath.backend/pkg/jwt"
)

func authRouter(svc AuthService) *gin.Engine {
	r := newTestRouter()
	h := NewAuthHandler(svc)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/refresh", h.RefreshToken)
	r.GET("/auth/me", withIdentity(testIdentity), h.GetMe)
	r.GET("/auth/me-anon", h.GetMe)
	return r
}

func cookieValue(resp *http.Response, name string) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func TestAuthHandler_Register(t *testing.T) {
	r := authRouter(authServiceStub{
		registerFn: func(_ context.Context, input *entities.RegisterInput) (*entities.User, error) {
			if input.Email == "taken@example.com" {
				return nil, domainerrors.Conflict("Email already registered")
			}
			return &entities.User{ID: uuid.New(), Email: input.Email, Name: input.Name, Role: entities.UserRoleStudent}, nil
		},
	})

	w := doRequest(r, http.MethodPost, "/auth/register", `{"email":"ada@example.com","name":"Ada","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, w.Body.String(), "password")

	w = doRequest(r, http.MethodPost, "/auth/register", `{"email":"taken@example.com","name":"Ada","password":"correct-horse"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/register", `{"email":"nope","name":"A","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginTokens(t *testing.T) {
	r := authRouter(authServiceStub{
		loginFn: func(_ context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
			if input.Password != "correct-horse" {
				return nil, domainerrors.Unauthorized("Invalid email or password")
			}
			return &entities.AuthResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         &entities.User{ID: testIdentity.UserID, Email: input.Email},
			}, nil
		},
	})

	w := doRequest(r, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "access", decodeBody(t, w)["accessToken"])
	v, ok := cookieValue(w.Result(), "refresh_token")
	assert.True(t, ok)
	assert.Equal(t, "refresh", v)

	w = doRequest(r, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
}

func TestAuthHandler_LoginSession(t *testing.T) {
	r := authRouter(authServiceStub{
		loginFn: func(_ context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
			assert.True(t, input.UseSession)
			return &entities.AuthResponse{SessionID: "sess-1", User: &entities.User{Email: input.Email}}, nil
		},
	})

	w := doRequest(r, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"pw","useSession":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "sess-1", body["sessionId"])
	assert.NotContains(t, body, "accessToken")
	_, hasToken := cookieValue(w.Result(), "token")
	assert.False(t, hasToken)
}

func TestAuthHandler_Logout(t *testing.T) {
	var got []string
	r := authRouter(authServiceStub{
		logoutFn: func(_ context.Context, sessionID string) error {
			got = append(got, sessionID)
			if sessionID == "broken" {
				return assert.AnError
			}
			return nil
		},
	})

	w := doRequest(r, http.MethodPost, "/auth/logout", "", middleware.SessionHeader, "sess-1")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/logout", "", "Cookie", "session_id=sess-2")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/logout", "", middleware.SessionHeader, "broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.Equal(t, []string{"sess-1", "sess-2", "", "broken"}, got)
}

func TestAuthHandler_Refresh(t *testing.T) {
	r := authRouter(authServiceStub{
		refreshFn: func(_ context.Context, token string) (*jwt.TokenPair, error) {
			if token != "good" {
				return nil, domainerrors.Unauthorized("Invalid refresh token")
			}
			return &jwt.TokenPair{AccessToken: "a2", RefreshToken: "r2", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	})

	w := doRequest(r, http.MethodPost, "/auth/refresh", `{"refreshToken":"good"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a2", decodeBody(t, w)["accessToken"])

	w = doRequest(r, http.MethodPost, "/auth/refresh", "", "Cookie", "refresh_token=good")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/refresh", `{"refreshToken":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/refresh", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(decodeBody(t, w)["error"].(string), "Refresh token is required"))
}

func TestAuthHandler_GetMe(t *testing.T) {
	r := authRouter(authServiceStub{
		getUserFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			return &entities.User{ID: id, Email: testIdentity.Email, Role: entities.UserRoleStudent}, nil
		},
	})

	w := doRequest(r, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, testIdentity.UserID.String(), user["id"])

	w = doRequest(r, http.MethodGet, "/auth/me-anon", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

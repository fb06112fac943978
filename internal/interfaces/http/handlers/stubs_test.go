package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"learnpath.backend/internal/domain/entities"
	"learnpath.backend/internal/interfaces/http/middleware"
	"learnpath.backend/pkg/jwt"
	"learnpath.backend/pkg/utils"
)

type catalogServiceStub struct {
	createFn func(ctx context.Context, t entities.CatalogType, raw map[string]any) (*entities.CatalogEntity, error)
	updateFn func(ctx context.Context, t entities.CatalogType, slug string, raw map[string]any) (*entities.CatalogEntity, error)
	getFn    func(ctx context.Context, t entities.CatalogType, slug string) (*entities.CatalogEntity, error)
	listFn   func(ctx context.Context, t entities.CatalogType, p utils.PaginationParams) ([]*entities.CatalogEntity, utils.PaginationMeta, error)
}

func (s catalogServiceStub) Create(ctx context.Context, t entities.CatalogType, raw map[string]any) (*entities.CatalogEntity, error) {
	return s.createFn(ctx, t, raw)
}
func (s catalogServiceStub) Update(ctx context.Context, t entities.CatalogType, slug string, raw map[string]any) (*entities.CatalogEntity, error) {
	return s.updateFn(ctx, t, slug, raw)
}
func (s catalogServiceStub) Get(ctx context.Context, t entities.CatalogType, slug string) (*entities.CatalogEntity, error) {
	return s.getFn(ctx, t, slug)
}
func (s catalogServiceStub) List(ctx context.Context, t entities.CatalogType, p utils.PaginationParams) ([]*entities.CatalogEntity, utils.PaginationMeta, error) {
	return s.listFn(ctx, t, p)
}

type enrollmentServiceStub struct {
	submitFn func(ctx context.Context, input *entities.SubmitEnrollmentInput) (*entities.Enrollment, error)
	listFn   func(ctx context.Context, email string) ([]*entities.Enrollment, error)
}

func (s enrollmentServiceStub) Submit(ctx context.Context, input *entities.SubmitEnrollmentInput) (*entities.Enrollment, error) {
	return s.submitFn(ctx, input)
}
func (s enrollmentServiceStub) ListByEmail(ctx context.Context, email string) ([]*entities.Enrollment, error) {
	return s.listFn(ctx, email)
}

type profileServiceStub struct {
	saveFn func(ctx context.Context, identity entities.Identity, raw map[string]any) (*entities.UserProfile, error)
	getFn  func(ctx context.Context, identity entities.Identity) (*entities.User, error)
}

func (s profileServiceStub) Save(ctx context.Context, identity entities.Identity, raw map[string]any) (*entities.UserProfile, error) {
	return s.saveFn(ctx, identity, raw)
}
func (s profileServiceStub) Get(ctx context.Context, identity entities.Identity) (*entities.User, error) {
	return s.getFn(ctx, identity)
}

type authServiceStub struct {
	registerFn func(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	loginFn    func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	logoutFn   func(ctx context.Context, sessionID string) error
	refreshFn  func(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	getUserFn  func(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

func (s authServiceStub) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	return s.registerFn(ctx, input)
}
func (s authServiceStub) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.loginFn(ctx, input)
}
func (s authServiceStub) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}
func (s authServiceStub) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}
func (s authServiceStub) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.getUserFn(ctx, id)
}

var testIdentity = entities.Identity{
	UserID: uuid.MustParse("0190c3a4-0000-7000-8000-000000000001"),
	Email:  "ada@example.com",
	Role:   string(entities.UserRoleStudent),
}

// withIdentity stands in for the auth middleware.
func withIdentity(identity entities.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, identity)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/interfaces/http/middleware"
	"learnpath.backend/internal/interfaces/http/response"
)

// ProfileService is what ProfileHandler needs from the profile usecase
type ProfileService interface {
	Save(ctx context.Context, identity entities.Identity, raw map[string]any) (*entities.UserProfile, error)
	Get(ctx context.Context, identity entities.Identity) (*entities.User, error)
}

// ProfileHandler handles the student profile endpoints
type ProfileHandler struct {
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Save overwrites the caller's profile. The route runs behind optional auth
// so a malformed body is reported before a missing identity.
// POST /api/v1/profile
func (h *ProfileHandler) Save(c *gin.Context) {
	body, err := bindObject(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	profile := body["profile"]
	if isFalsy(profile) {
		response.Error(c, domainerrors.BadRequest("Missing profile payload"))
		return
	}
	raw, isObj := profile.(map[string]any)
	if !isObj {
		// nothing to whitelist, every field resets
		raw = map[string]any{}
	}

	if _, err := h.profileService.Save(c.Request.Context(), identity, raw); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

// Get returns the caller with their profile
// GET /api/v1/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"profile": user.Profile,
	})
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	}
	return false
}

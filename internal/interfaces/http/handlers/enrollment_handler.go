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

// EnrollmentService is what EnrollmentHandler needs from the enrollment usecase
type EnrollmentService interface {
	Submit(ctx context.Context, input *entities.SubmitEnrollmentInput) (*entities.Enrollment, error)
	ListByEmail(ctx context.Context, email string) ([]*entities.Enrollment, error)
}

// EnrollmentHandler handles checkout submissions
type EnrollmentHandler struct {
	enrollmentService EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollmentService EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Submit stores a pending enrollment
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Submit(c *gin.Context) {
	var input entities.SubmitEnrollmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(invalidBodyMessage))
		return
	}

	enrollment, err := h.enrollmentService.Submit(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, enrollment)
}

// ListMine returns the caller's enrollments
// GET /api/v1/enrollments
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	items, err := h.enrollmentService.ListByEmail(c.Request.Context(), identity.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []*entities.Enrollment{}
	}
	response.Success(c, http.StatusOK, items)
}

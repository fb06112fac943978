package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/internal/domain/repositories"
	"learnpath.backend/pkg/utils"
)

var enrollmentFields = []string{"userEmail", "courseType", "courseSlug", "amount", "currency"}

// enrollmentForm is the trimmed submission checked by the validator.
type enrollmentForm struct {
	UserEmail  string   `json:"userEmail" validate:"required,basic_email"`
	CourseType string   `json:"courseType" validate:"required,oneof=skillpath careerpath course hackathon"`
	CourseSlug string   `json:"courseSlug" validate:"required"`
	Amount     *float64 `json:"amount" validate:"required,min=0"`
	Currency   string   `json:"currency" validate:"required,iso4217"`
}

// EnrollmentUsecase accepts checkout submissions
type EnrollmentUsecase struct {
	enrollmentRepo repositories.EnrollmentRepository
	catalogRepo    repositories.CatalogRepository
}

// NewEnrollmentUsecase creates a new enrollment usecase
func NewEnrollmentUsecase(enrollmentRepo repositories.EnrollmentRepository, catalogRepo repositories.CatalogRepository) *EnrollmentUsecase {
	return &EnrollmentUsecase{
		enrollmentRepo: enrollmentRepo,
		catalogRepo:    catalogRepo,
	}
}

// Submit re-validates a checkout request and stores it as pending.
// Any status sent by the client is ignored.
func (u *EnrollmentUsecase) Submit(ctx context.Context, input *entities.SubmitEnrollmentInput) (*entities.Enrollment, error) {
	if input == nil {
		return nil, domainerrors.BadRequest(invalidRequestMessage)
	}

	form := enrollmentForm{
		UserEmail:  strings.TrimSpace(input.UserEmail),
		CourseType: strings.TrimSpace(input.CourseType),
		CourseSlug: strings.TrimSpace(input.CourseSlug),
		Amount:     input.Amount,
		Currency:   strings.ToUpper(strings.TrimSpace(input.Currency)),
	}

	errs := newFieldErrors()
	if err := errs.collectValidatorErrors(validate.Struct(&form), enrollmentConstraintMessage); err != nil {
		return nil, err
	}

	courseType := entities.CatalogType(form.CourseType)
	if len(errs.fields["courseType"]) == 0 && len(errs.fields["courseSlug"]) == 0 {
		if _, err := u.catalogRepo.GetBySlug(ctx, courseType, form.CourseSlug); err != nil {
			if !errors.Is(err, domainerrors.ErrNotFound) {
				return nil, err
			}
			errs.add("courseSlug", "Course not found")
		}
	}
	if !errs.empty() {
		return nil, errs.toError(enrollmentFields)
	}

	now := time.Now()
	enrollment := &entities.Enrollment{
		ID:         utils.GenerateUUIDv7(),
		UserEmail:  form.UserEmail,
		CourseType: courseType,
		CourseSlug: form.CourseSlug,
		Status:     entities.EnrollmentStatusPending,
		Amount:     *form.Amount,
		Currency:   form.Currency,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListByEmail returns enrollments submitted with email, newest first
func (u *EnrollmentUsecase) ListByEmail(ctx context.Context, email string) ([]*entities.Enrollment, error) {
	return u.enrollmentRepo.ListByEmail(ctx, strings.TrimSpace(email))
}

func enrollmentConstraintMessage(fe validator.FieldError, leaf string) string {
	switch leaf + "/" + fe.Tag() {
	case "userEmail/required":
		return "Please enter your email"
	case "userEmail/basic_email":
		return "Please enter a valid email address"
	case "courseType/oneof":
		return fmt.Sprintf("Invalid enum value. Expected 'skillpath' | 'careerpath' | 'course' | 'hackathon', received '%v'", fe.Value())
	case "amount/min":
		return "Number must be greater than or equal to 0"
	case "currency/iso4217":
		return "Invalid currency code"
	}
	if fe.Tag() == "required" {
		return "Required"
	}
	return "Invalid input"
}

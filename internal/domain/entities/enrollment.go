package entities

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus represents the state of an enrollment request
type EnrollmentStatus string

const (
	EnrollmentStatusPending  EnrollmentStatus = "pending"
	EnrollmentStatusApproved EnrollmentStatus = "approved"
	EnrollmentStatusPaid     EnrollmentStatus = "paid"
	EnrollmentStatusFailed   EnrollmentStatus = "failed"
)

// Enrollment is one checkout submission for a catalog entity.
// Only the pending state is written here; later states belong to payment confirmation.
type Enrollment struct {
	ID         uuid.UUID        `json:"id"`
	UserEmail  string           `json:"userEmail"`
	CourseType CatalogType      `json:"courseType"`
	CourseSlug string           `json:"courseSlug"`
	Status     EnrollmentStatus `json:"status"`
	Amount     float64          `json:"amount"`
	Currency   string           `json:"currency"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// SubmitEnrollmentInput is the raw checkout request body.
// Status is accepted for wire compatibility and ignored.
type SubmitEnrollmentInput struct {
	UserEmail  string   `json:"userEmail"`
	CourseType string   `json:"courseType"`
	CourseSlug string   `json:"courseSlug"`
	Status     string   `json:"status,omitempty"`
	Amount     *float64 `json:"amount"`
	Currency   string   `json:"currency"`
}

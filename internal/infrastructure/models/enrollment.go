package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserEmail  string    `gorm:"type:varchar(255);not null;index"`
	CourseType string    `gorm:"type:varchar(32);not null"`
	CourseSlug string    `gorm:"type:varchar(255);not null"`
	Status     string    `gorm:"type:varchar(32);not null;default:'pending';index"`
	Amount     float64   `gorm:"not null"`
	Currency   string    `gorm:"type:char(3);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

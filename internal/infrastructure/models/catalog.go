package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SyllabusSection struct {
	Title string   `json:"title"`
	Items []string `json:"items,omitempty"`
}

type CatalogEntity struct {
	ID        uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	Type      string                               `gorm:"type:varchar(32);not null;uniqueIndex:idx_catalog_entities_type_slug,priority:1"`
	Name      string                               `gorm:"type:varchar(255);not null"`
	Img       string                               `gorm:"type:text;not null"`
	Duration  string                               `gorm:"type:varchar(100);not null"`
	Level     string                               `gorm:"type:varchar(32);not null;default:'Beginner'"`
	Desc      string                               `gorm:"column:description;type:text;not null"`
	Skills    datatypes.JSONSlice[string]          `gorm:"not null"`
	Perks     datatypes.JSONSlice[string]          `gorm:"not null"`
	Syllabus  datatypes.JSONSlice[SyllabusSection] `gorm:"not null"`
	Rating    *float64
	Students  *float64
	Slug      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_catalog_entities_type_slug,priority:2"`
	Href      string    `gorm:"type:varchar(300);not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (CatalogEntity) TableName() string {
	return "catalog_entities"
}

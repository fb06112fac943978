package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CatalogType identifies a catalog collection. It is also the first path
// segment of every entity href, so values must never change.
type CatalogType string

const (
	CatalogTypeSkillPath  CatalogType = "skillpath"
	CatalogTypeCareerPath CatalogType = "careerpath"
	CatalogTypeCourse     CatalogType = "course"
	CatalogTypeHackathon  CatalogType = "hackathon"
)

// CatalogTypes lists the closed set of catalog types in display order.
var CatalogTypes = []CatalogType{
	CatalogTypeSkillPath,
	CatalogTypeCareerPath,
	CatalogTypeCourse,
	CatalogTypeHackathon,
}

// IsValid reports whether t is one of the four catalog types.
func (t CatalogType) IsValid() bool {
	for _, v := range CatalogTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ParseCatalogRoute maps a route segment ("skillpaths" or "skillpath") to its type.
func ParseCatalogRoute(segment string) (CatalogType, bool) {
	s := strings.ToLower(strings.TrimSpace(segment))
	t := CatalogType(strings.TrimSuffix(s, "s"))
	if t.IsValid() {
		return t, true
	}
	return "", false
}

// Level represents the difficulty of a catalog entity
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// SyllabusSection is one titled block of a syllabus
type SyllabusSection struct {
	Title string   `json:"title" validate:"min=1"`
	Items []string `json:"items,omitempty" validate:"omitempty,dive,min=1"`
}

// CatalogEntity represents a purchasable/enrollable offering
type CatalogEntity struct {
	ID        uuid.UUID         `json:"id"`
	Type      CatalogType       `json:"type"`
	Name      string            `json:"name"`
	Img       string            `json:"img"`
	Duration  string            `json:"duration"`
	Level     Level             `json:"level"`
	Desc      string            `json:"desc"`
	Skills    []string          `json:"skills"`
	Perks     []string          `json:"perks"`
	Syllabus  []SyllabusSection `json:"syllabus"`
	Rating    null.Float64      `json:"rating"`
	Students  null.Float64      `json:"students"`
	Slug      string            `json:"slug"`
	Href      string            `json:"href"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CatalogPayload is a validated, normalized create/update payload.
type CatalogPayload struct {
	Name     string            `json:"name" validate:"min=2"`
	Img      string            `json:"img" validate:"min=1"`
	Duration string            `json:"duration" validate:"min=1"`
	Level    Level             `json:"level" validate:"oneof=Beginner Intermediate Advanced"`
	Desc     string            `json:"desc" validate:"min=10"`
	Skills   []string          `json:"skills"`
	Perks    []string          `json:"perks"`
	Syllabus []SyllabusSection `json:"syllabus" validate:"dive"`
	Rating   *float64          `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Students *float64          `json:"students,omitempty" validate:"omitempty,min=0"`
	Slug     string            `json:"slug,omitempty"`
	Href     string            `json:"href,omitempty"`
}

// BuildHref returns the public URL path of an entity.
func BuildHref(t CatalogType, slug string) string {
	return "/" + string(t) + "/" + slug
}

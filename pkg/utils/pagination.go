package utils

import (
	"math"
	"strconv"
	"strings"
)

// MaxLimit caps page size for list endpoints
const MaxLimit = 100

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// GetPaginationParams applies defaults: page 1, limit 0 (everything).
// Limits above MaxLimit are clamped.
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// ParsePaginationQuery reads raw query values; junk falls back to defaults.
func ParsePaginationQuery(page, limit string) PaginationParams {
	p, _ := strconv.Atoi(strings.TrimSpace(page))
	l, _ := strconv.Atoi(strings.TrimSpace(limit))
	return GetPaginationParams(p, l)
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// CalculateMeta generates pagination metadata
func CalculateMeta(totalCount int64, page, limit int) PaginationMeta {
	if limit <= 0 {
		return PaginationMeta{
			Page:       1,
			Limit:      int(totalCount),
			TotalCount: totalCount,
			TotalPages: 1,
		}
	}

	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}
}

package usecases

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
)

// MaxSlugAttempts bounds the suffix search of SlugAllocator.Allocate.
const MaxSlugAttempts = 10000

// NormalizeSlug turns a display name into a lowercase ASCII token:
// accents are stripped, every run of characters outside [a-z0-9]
// becomes a single hyphen, and edge hyphens are trimmed.
// "Café Hack! 2024" -> "cafe-hack-2024". Empty input yields "".
func NormalizeSlug(name string) string {
	decomposed := norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingDash := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// SlugChecker reports whether a slug is already used in one catalog collection.
type SlugChecker interface {
	SlugExists(ctx context.Context, catalogType entities.CatalogType, slug string, excludeID *uuid.UUID) (bool, error)
}

// SlugAllocator finds a free slug by appending -2, -3, ... to a base.
// The check is not atomic with the later insert; the storage unique
// index on (type, slug) is the final arbiter.
type SlugAllocator struct {
	checker     SlugChecker
	maxAttempts int
}

// NewSlugAllocator creates an allocator capped at MaxSlugAttempts candidates.
func NewSlugAllocator(checker SlugChecker) *SlugAllocator {
	return &SlugAllocator{checker: checker, maxAttempts: MaxSlugAttempts}
}

// Allocate returns base or the first free base-N. excludeID skips the
// entity being updated so it does not collide with itself.
func (a *SlugAllocator) Allocate(ctx context.Context, catalogType entities.CatalogType, base string, excludeID *uuid.UUID) (string, error) {
	if base == "" {
		return "", domainerrors.ErrEmptySlugBase
	}

	candidate := base
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := a.checker.SlugExists(ctx, catalogType, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(attempt+1)
	}
	return "", domainerrors.ErrSlugExhausted
}

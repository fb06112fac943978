package usecases_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
)

// passthroughUoW runs fn without a transaction.
type passthroughUoW struct{}

func (passthroughUoW) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// memCatalogRepo enforces (type, slug) uniqueness on write like the storage index does.
type memCatalogRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entities.CatalogEntity
	creates int
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{byID: make(map[uuid.UUID]*entities.CatalogEntity)}
}

func (r *memCatalogRepo) seed(e *entities.CatalogEntity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.byID[e.ID] = &cp
}

func (r *memCatalogRepo) taken(t entities.CatalogType, slug string, exclude uuid.UUID) bool {
	for id, e := range r.byID {
		if e.Type == t && e.Slug == slug && id != exclude {
			return true
		}
	}
	return false
}

func (r *memCatalogRepo) Create(_ context.Context, e *entities.CatalogEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.taken(e.Type, e.Slug, uuid.Nil) {
		return &domainerrors.DuplicateKeyError{Fields: []string{"slug"}}
	}
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *memCatalogRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.CatalogEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memCatalogRepo) GetBySlug(_ context.Context, t entities.CatalogType, slug string) (*entities.CatalogEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.Type == t && e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *memCatalogRepo) SlugExists(_ context.Context, t entities.CatalogType, slug string, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exclude := uuid.Nil
	if excludeID != nil {
		exclude = *excludeID
	}
	return r.taken(t, slug, exclude), nil
}

func (r *memCatalogRepo) List(_ context.Context, t entities.CatalogType, limit, offset int) ([]*entities.CatalogEntity, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entities.CatalogEntity
	for _, e := range r.byID {
		if e.Type == t {
			cp := *e
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	total := int64(len(items))
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, total, nil
}

func (r *memCatalogRepo) Update(_ context.Context, e *entities.CatalogEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[e.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	if r.taken(e.Type, e.Slug, e.ID) {
		return &domainerrors.DuplicateKeyError{Fields: []string{"slug"}}
	}
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *memCatalogRepo) slugs(t entities.CatalogType) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.byID {
		if e.Type == t {
			out = append(out, e.Slug)
		}
	}
	sort.Strings(out)
	return out
}

// racingCatalogRepo holds every slug check until n callers have checked,
// so all of them see the same free slug before anyone inserts.
type racingCatalogRepo struct {
	*memCatalogRepo
	arrived sync.WaitGroup
}

func newRacingCatalogRepo(n int) *racingCatalogRepo {
	r := &racingCatalogRepo{memCatalogRepo: newMemCatalogRepo()}
	r.arrived.Add(n)
	return r
}

func (r *racingCatalogRepo) SlugExists(ctx context.Context, t entities.CatalogType, slug string, excludeID *uuid.UUID) (bool, error) {
	exists, err := r.memCatalogRepo.SlugExists(ctx, t, slug, excludeID)
	r.arrived.Done()
	r.arrived.Wait()
	return exists, err
}

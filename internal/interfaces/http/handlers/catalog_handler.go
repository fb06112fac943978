package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"learnpath.backend/internal/domain/entities"
	"learnpath.backend/internal/interfaces/http/response"
	"learnpath.backend/pkg/utils"
)

// CatalogService is what CatalogHandler needs from the catalog usecase
type CatalogService interface {
	Create(ctx context.Context, catalogType entities.CatalogType, raw map[string]any) (*entities.CatalogEntity, error)
	Update(ctx context.Context, catalogType entities.CatalogType, slug string, raw map[string]any) (*entities.CatalogEntity, error)
	Get(ctx context.Context, catalogType entities.CatalogType, slug string) (*entities.CatalogEntity, error)
	List(ctx context.Context, catalogType entities.CatalogType, pagination utils.PaginationParams) ([]*entities.CatalogEntity, utils.PaginationMeta, error)
}

// CatalogHandler handles catalog endpoints
type CatalogHandler struct {
	catalogService CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List returns entities of one type, newest first
// GET /api/v1/catalog/:type?page=&limit=
func (h *CatalogHandler) List(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	catalogType, err := catalogTypeParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pagination := utils.ParsePaginationQuery(c.Query("page"), c.Query("limit"))
	items, meta, err := h.catalogService.List(c.Request.Context(), catalogType, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []*entities.CatalogEntity{}
	}

	c.Header("X-Total-Count", strconv.FormatInt(meta.TotalCount, 10))
	c.Header("X-Total-Pages", strconv.Itoa(meta.TotalPages))
	response.Success(c, http.StatusOK, items)
}

// Get returns one entity
// GET /api/v1/catalog/:type/:slug
func (h *CatalogHandler) Get(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	catalogType, err := catalogTypeParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	entity, err := h.catalogService.Get(c.Request.Context(), catalogType, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entity)
}

// Create stores a new entity and returns it as persisted
// POST /api/v1/catalog/:type
func (h *CatalogHandler) Create(c *gin.Context) {
	catalogType, err := catalogTypeParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	raw, err := bindObject(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.catalogService.Create(c.Request.Context(), catalogType, raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update replaces an entity's fields
// PUT /api/v1/catalog/:type/:slug
func (h *CatalogHandler) Update(c *gin.Context) {
	catalogType, err := catalogTypeParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	raw, err := bindObject(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.catalogService.Update(c.Request.Context(), catalogType, c.Param("slug"), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"learnpath.backend/internal/domain/entities"
	domainerrors "learnpath.backend/internal/domain/errors"
)

const invalidBodyMessage = "Invalid body"

// bindObject decodes a JSON object body. Arrays, scalars and malformed JSON
// are rejected.
func bindObject(c *gin.Context) (map[string]any, error) {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, domainerrors.BadRequest(invalidBodyMessage)
	}
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, domainerrors.BadRequest(invalidBodyMessage)
	}
	return obj, nil
}

// catalogTypeParam resolves the :type segment, accepting plural route forms.
func catalogTypeParam(c *gin.Context) (entities.CatalogType, error) {
	t, ok := entities.ParseCatalogRoute(c.Param("type"))
	if !ok {
		return "", domainerrors.NotFound("Unknown catalog type")
	}
	return t, nil
}

package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "learnpath.backend/internal/domain/errors"
	"learnpath.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error renders err as {code, message, error}. Anything that is not an
// AppError is logged and reported as a generic 500.
func Error(c *gin.Context, err error) {
	appErr, ok := domainerrors.As(err)
	if !ok {
		appErr = domainerrors.InternalError(err)
	}

	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    code,
		"message": message,
		"error":   message,
	})
}

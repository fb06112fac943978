package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"learnpath.backend/internal/interfaces/http/response"
	"learnpath.backend/pkg/logger"
	"learnpath.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	idempotencyPrefix = "learnpath:idempotency:"
	processingMarker  = "processing"
)

var (
	redisEnabled = redis.Enabled
	redisGet     = redis.Get
	redisSet     = redis.Set
	redisSetNX   = redis.SetNX
	redisDel     = redis.Del
)

// storedResponse is what gets replayed for a repeated key
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        string `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a request repeats an
// Idempotency-Key. Keys are scoped per caller. Without Redis it is a no-op.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || !redisEnabled() {
			c.Next()
			return
		}

		scope := "anonymous"
		if identity, ok := GetIdentity(c); ok {
			scope = identity.UserID.String()
		}
		storageKey := idempotencyPrefix + scope + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil && val == processingMarker:
			response.ErrorWithError(c, http.StatusConflict, "ERR_IDEMPOTENCY_CONFLICT", "Request already in progress")
			return
		case err == nil:
			var stored storedResponse
			if jsonErr := json.Unmarshal([]byte(val), &stored); jsonErr == nil && stored.Status != 0 {
				c.Header("X-Idempotency-Hit", "true")
				c.Data(stored.Status, stored.ContentType, []byte(stored.Body))
				c.Abort()
				return
			}
			// unreadable entry, treat as absent
			_ = redisDel(ctx, storageKey)
		case !redis.IsNil(err):
			logger.Warn(ctx, "Idempotency lookup failed, processing without it", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.ErrorWithError(c, http.StatusConflict, "ERR_IDEMPOTENCY_CONFLICT", "Request already in progress")
			return
		}

		w := &bodyRecorder{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			// let the client retry
			_ = redisDel(ctx, storageKey)
			return
		}
		encoded, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        w.body.String(),
		})
		if err == nil {
			err = redisSet(ctx, storageKey, string(encoded), RetentionDuration)
		}
		if err != nil {
			logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			_ = redisDel(ctx, storageKey)
		}
	}
}

package middleware

import (
	"time"

	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// RequestLogger writes one line per request once the handler chain has finished
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", types.GetRequestID(c.Request.Context()),
		}
		if raw := c.Request.URL.RawQuery; raw != "" {
			fields = append(fields, "query", raw)
		}

		if len(c.Errors) > 0 {
			log.Warnw("request completed with errors", append(fields, "errors", c.Errors.String())...)
			return
		}
		log.Infow("request completed", fields...)
	}
}

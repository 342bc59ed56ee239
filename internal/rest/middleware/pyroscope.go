package middleware

import (
	"context"

	"github.com/carsapp/cars/internal/pyroscope"
	"github.com/gin-gonic/gin"
)

// PyroscopeMiddleware attaches the route to profiles sampled while the request runs
func PyroscopeMiddleware(svc *pyroscope.Service) gin.HandlerFunc {
	if !svc.IsEnabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		labels := map[string]string{
			"method":   c.Request.Method,
			"endpoint": c.FullPath(),
		}

		svc.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

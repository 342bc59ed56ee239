package middleware

import (
	"time"

	"github.com/carsapp/cars/internal/sentry"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// untracedPaths are polled constantly and never reported
var untracedPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// SentryMiddleware binds a sentry hub to every request except health and metrics polling
func SentryMiddleware(svc *sentry.Service) gin.HandlerFunc {
	if !svc.Enabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	capture := sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})

	return func(c *gin.Context) {
		if _, skip := untracedPaths[c.Request.URL.Path]; skip {
			c.Next()
			return
		}
		capture(c)
	}
}

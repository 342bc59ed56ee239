package middleware

import (
	"net/http"

	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached to the context as an
// ErrorMessageCollection. Server errors are reported to sentry when a hub is bound.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, response := ierr.ToErrorMessageCollection(err)

		if status >= http.StatusInternalServerError {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			if hub := sentrygin.GetHubFromContext(c); hub != nil {
				hub.CaptureException(err)
			}
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, response)
	}
}

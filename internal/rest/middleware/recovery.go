package middleware

import (
	"fmt"

	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/types"
	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a 500 ErrorMessageCollection
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := ierr.NewError(fmt.Sprintf("panic: %v", recovered)).
			WithHint("An unexpected error occurred.").
			Mark(ierr.ErrSystem)

		log.Errorw("recovered from panic",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", types.GetRequestID(c.Request.Context()),
			"panic", recovered,
		)

		c.Error(err)
		status, response := ierr.ToErrorMessageCollection(err)
		c.AbortWithStatusJSON(status, response)
	})
}

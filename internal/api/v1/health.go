package v1

import (
	"net/http"

	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/types"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	logger *logger.Logger
}

func NewHealthHandler(
	logger *logger.Logger,
) *HealthHandler {
	return &HealthHandler{
		logger: logger,
	}
}

// Health answers liveness checks. HEAD gets the status line only.
func (h *HealthHandler) Health(c *gin.Context) {
	h.logger.Debugw("health check",
		"method", c.Request.Method,
		"request_id", types.GetRequestID(c.Request.Context()),
	)

	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

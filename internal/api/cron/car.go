package cron

import (
	"net/http"

	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/scheduler"
	"github.com/gin-gonic/gin"
)

// CarCronHandler runs the activation job on demand
type CarCronHandler struct {
	logger *logger.Logger
	job    *scheduler.ActivationJob
}

func NewCarCronHandler(logger *logger.Logger, job *scheduler.ActivationJob) *CarCronHandler {
	return &CarCronHandler{
		logger: logger,
		job:    job,
	}
}

// ActivateCars runs one activation pass and reports what it did
func (h *CarCronHandler) ActivateCars(c *gin.Context) {
	h.logger.Infow("manual car activation requested")

	result, err := h.job.Run(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

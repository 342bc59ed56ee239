package v1

import (
	"net/http"

	"github.com/carsapp/cars/internal/api/dto"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/service"
	"github.com/gin-gonic/gin"
)

// CarQueueHandler serves the jms/cars surface. Writes are acknowledged once
// published and applied later by the consumer.
type CarQueueHandler struct {
	service service.CarQueueService
	log     *logger.Logger
}

func NewCarQueueHandler(service service.CarQueueService, log *logger.Logger) *CarQueueHandler {
	return &CarQueueHandler{service: service, log: log}
}

func (h *CarQueueHandler) EnqueueCreate(c *gin.Context) {
	req, err := bindCarRequest(c)
	if err != nil {
		c.Error(err)
		return
	}

	accepted, err := h.service.EnqueueCreate(c.Request.Context(), req.ToCar(0))
	if err != nil {
		h.log.Warnw("failed to enqueue car creation", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(accepted))
}

func (h *CarQueueHandler) EnqueueUpdate(c *gin.Context) {
	id, err := parseCarID(c)
	if err != nil {
		c.Error(err)
		return
	}

	req, err := bindCarRequest(c)
	if err != nil {
		c.Error(err)
		return
	}

	accepted, err := h.service.EnqueueUpdate(c.Request.Context(), id, req.ToCar(id))
	if err != nil {
		h.log.Warnw("failed to enqueue car update", "id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(accepted))
}

func (h *CarQueueHandler) EnqueueDelete(c *gin.Context) {
	id, err := parseCarID(c)
	if err != nil {
		c.Error(err)
		return
	}

	accepted, err := h.service.EnqueueDelete(c.Request.Context(), id)
	if err != nil {
		h.log.Warnw("failed to enqueue car deletion", "id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(accepted))
}

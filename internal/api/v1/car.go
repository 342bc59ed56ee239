package v1

import (
	"fmt"
	"net/http"

	"github.com/carsapp/cars/internal/api/dto"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/service"
	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	service service.CarService
	log     *logger.Logger
}

func NewCarHandler(service service.CarService, log *logger.Logger) *CarHandler {
	return &CarHandler{service: service, log: log}
}

func carLocation(id int64) string {
	return fmt.Sprintf("/cars/%d", id)
}

func (h *CarHandler) ListCars(c *gin.Context) {
	cars, err := h.service.ListCars(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to list cars", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarListResponse(cars))
}

func (h *CarHandler) GetCar(c *gin.Context) {
	id, err := parseCarID(c)
	if err != nil {
		c.Error(err)
		return
	}

	found, err := h.service.GetCar(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(found))
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	req, err := bindCarRequest(c)
	if err != nil {
		h.log.Debugw("failed to bind car request", "error", err)
		c.Error(err)
		return
	}

	created, err := h.service.CreateCar(c.Request.Context(), req.ToCar(0))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Location", carLocation(created.ID))
	c.JSON(http.StatusCreated, dto.NewCarResponse(created))
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	id, err := parseCarID(c)
	if err != nil {
		c.Error(err)
		return
	}

	req, err := bindCarRequest(c)
	if err != nil {
		h.log.Debugw("failed to bind car request", "error", err)
		c.Error(err)
		return
	}

	updated, err := h.service.UpdateCar(c.Request.Context(), req.ToCar(id))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Location", carLocation(updated.ID))
	c.JSON(http.StatusOK, dto.NewCarResponse(updated))
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	id, err := parseCarID(c)
	if err != nil {
		c.Error(err)
		return
	}

	deleted, err := h.service.DeleteCar(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(deleted))
}

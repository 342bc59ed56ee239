package v1

import (
	"strconv"

	"github.com/carsapp/cars/internal/api/dto"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/gin-gonic/gin"
)

// parseCarID reads the :id path parameter
func parseCarID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHintf("Path parameter id must be an integer, got %q.", raw).
			WithReportableDetails(map[string]any{"id": raw}).
			Mark(ierr.ErrMalformedParameter)
	}
	return id, nil
}

func bindCarRequest(c *gin.Context) (*dto.CarRequest, error) {
	var req dto.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid request payload.").
			Mark(ierr.ErrValidation)
	}
	return &req, nil
}

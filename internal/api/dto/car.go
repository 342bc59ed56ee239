package dto

import (
	"github.com/carsapp/cars/internal/domain/car"
	"github.com/carsapp/cars/internal/types"
	"github.com/samber/lo"
)

// CarRequest is the body accepted by create and update. Server stamped fields are ignored.
type CarRequest struct {
	Brand        string         `json:"brand"`
	Registration types.DateTime `json:"registration"`
	Country      string         `json:"country"`
	Status       *bool          `json:"status,omitempty"`
}

// ToCar builds the car the request describes; id is zero for creations
func (r *CarRequest) ToCar(id int64) *car.Car {
	return &car.Car{
		ID:           id,
		Brand:        r.Brand,
		Registration: r.Registration,
		Country:      r.Country,
		Status:       lo.FromPtrOr(r.Status, false),
	}
}

type CarResponse struct {
	*car.Car
}

func NewCarResponse(c *car.Car) *CarResponse {
	return &CarResponse{Car: c}
}

func NewCarListResponse(cars []*car.Car) []*CarResponse {
	return lo.Map(cars, func(c *car.Car, _ int) *CarResponse {
		return NewCarResponse(c)
	})
}

package car

import (
	"fmt"
	"time"

	"github.com/carsapp/cars/internal/types"
	"github.com/go-playground/validator/v10"
)

// Car is the only entity managed by the service
type Car struct {
	// ID is assigned by storage on first persistence and never changes afterwards
	ID int64 `db:"id" json:"id,omitempty"`

	// Brand is the manufacturer name
	Brand string `db:"brand" json:"brand" validate:"required,min=2,max=50"`

	// Registration is when the vehicle was registered, not an audit field
	Registration types.DateTime `db:"registration" json:"registration" validate:"required"`

	// Country is where the vehicle is registered
	Country string `db:"country" json:"country" validate:"required,min=2,max=100"`

	// Status is false until the activation job promotes the car
	Status bool `db:"status" json:"status"`

	CreatedAt types.DateTime `db:"created_at" json:"created_at"`
	UpdatedAt types.DateTime `db:"updated_at" json:"updated_at"`
}

// New returns an inactive, unpersisted car
func New(brand string, registration time.Time, country string) *Car {
	return &Car{
		Brand:        brand,
		Registration: types.NewDateTime(registration),
		Country:      country,
		Status:       false,
	}
}

// IsPersisted reports whether storage has assigned an identity
func (c *Car) IsPersisted() bool {
	return c.ID != 0
}

// OnCreate stamps both audit timestamps at first persistence
func (c *Car) OnCreate(now time.Time) {
	c.CreatedAt = types.NewDateTime(now)
	c.UpdatedAt = c.CreatedAt
}

// OnUpdate re-stamps UpdatedAt, never moving it before CreatedAt
func (c *Car) OnUpdate(now time.Time) {
	if !c.CreatedAt.IsZero() && now.Before(c.CreatedAt.Time) {
		now = c.CreatedAt.Time
	}
	c.UpdatedAt = types.NewDateTime(now)
}

// Activate promotes the car to active. There is no way back.
func (c *Car) Activate() {
	c.Status = true
}

func (c *Car) String() string {
	return fmt.Sprintf("Car{id=%d brand=%q country=%q status=%t}", c.ID, c.Brand, c.Country, c.Status)
}

// ViolationMessage phrases validation failures for API callers and queue logs
func (c *Car) ViolationMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Brand":
		if fe.Tag() == "required" {
			return "Brand field can't be empty."
		}
		return "Brand field must have a length from 2 to 50 characters."
	case "Registration":
		return "Registration field for Car can't be empty."
	case "Country":
		if fe.Tag() == "required" {
			return "Country field for Car can't be empty."
		}
		return "Country field must have a length from 2 to 100 characters."
	}
	return ""
}

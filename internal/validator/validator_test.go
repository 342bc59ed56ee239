package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCar() *car.Car {
	return car.New("BMW", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Spain")
}

func TestViolations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *car.Car)
		expected []string
	}{
		{
			name:     "valid car",
			mutate:   func(c *car.Car) {},
			expected: []string{},
		},
		{
			name:     "empty brand",
			mutate:   func(c *car.Car) { c.Brand = "" },
			expected: []string{"Brand field can't be empty."},
		},
		{
			name:     "brand too short",
			mutate:   func(c *car.Car) { c.Brand = "B" },
			expected: []string{"Brand field must have a length from 2 to 50 characters."},
		},
		{
			name:     "brand too long",
			mutate:   func(c *car.Car) { c.Brand = strings.Repeat("b", 51) },
			expected: []string{"Brand field must have a length from 2 to 50 characters."},
		},
		{
			name:     "missing registration",
			mutate:   func(c *car.Car) { c.Registration = types.DateTime{} },
			expected: []string{"Registration field for Car can't be empty."},
		},
		{
			name:     "empty country",
			mutate:   func(c *car.Car) { c.Country = "" },
			expected: []string{"Country field for Car can't be empty."},
		},
		{
			name:     "country too long",
			mutate:   func(c *car.Car) { c.Country = strings.Repeat("c", 101) },
			expected: []string{"Country field must have a length from 2 to 100 characters."},
		},
		{
			name: "every violation is reported",
			mutate: func(c *car.Car) {
				c.Brand = "B"
				c.Registration = types.DateTime{}
				c.Country = ""
			},
			expected: []string{
				"Brand field must have a length from 2 to 50 characters.",
				"Registration field for Car can't be empty.",
				"Country field for Car can't be empty.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCar()
			tt.mutate(c)
			assert.Equal(t, tt.expected, Violations(c))
		})
	}
}

func TestViolationsBoundaries(t *testing.T) {
	c := validCar()
	c.Brand = strings.Repeat("b", 50)
	c.Country = "ES"
	assert.Empty(t, Violations(c))
}

func TestViolationsIsDeterministic(t *testing.T) {
	c := validCar()
	c.Brand = ""
	c.Country = "x"

	first := Violations(c)
	second := Violations(c)

	assert.Equal(t, first, second)
	assert.Equal(t, "", c.Brand)
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(validCar()))

	c := validCar()
	c.Brand = ""
	c.Country = ""

	err := ValidateRequest(c)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, payload := ierr.ToErrorMessageCollection(err)
	require.Len(t, payload.Errors, 2)
	assert.Equal(t, "Brand field can't be empty.", payload.Errors[0].Message)
	assert.Equal(t, "Country field for Car can't be empty.", payload.Errors[1].Message)
}

func TestDefaultMessages(t *testing.T) {
	type sample struct {
		Name string `validate:"required"`
		Mode string `validate:"oneof=a b"`
	}

	assert.Equal(t, []string{
		"Name field can't be empty.",
		"Mode field must be one of [a b].",
	}, Violations(&sample{Mode: "c"}))
}

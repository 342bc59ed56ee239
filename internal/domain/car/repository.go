package car

import (
	"context"
)

// Repository defines the interface for car data access
type Repository interface {
	// Create stamps the car via OnCreate and stores it, assigning ID
	Create(ctx context.Context, car *Car) error
	// Find returns nil, nil when no car has the id
	Find(ctx context.Context, id int64) (*Car, error)
	// FindAll returns an empty slice when there are no cars
	FindAll(ctx context.Context) ([]*Car, error)
	FindByStatus(ctx context.Context, status bool) ([]*Car, error)
	// Update stamps the car via OnUpdate and overwrites the stored row except
	// created_at. Status is OR-ed with the stored value so an update never
	// deactivates; the car is refreshed with the stored status and timestamps.
	Update(ctx context.Context, car *Car) error
	// Activate sets status alone for an inactive car. It reports false when the
	// car is already active or gone.
	Activate(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, car *Car) error
}

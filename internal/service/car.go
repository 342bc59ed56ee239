package service

import (
	"context"
	"sort"
	"sync"

	"github.com/carsapp/cars/internal/api/dto"
	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/validator"
	"github.com/sourcegraph/conc/pool"
)

// CarService owns the car lifecycle rules
type CarService interface {
	ListCars(ctx context.Context) ([]*car.Car, error)
	GetCar(ctx context.Context, id int64) (*car.Car, error)
	CreateCar(ctx context.Context, c *car.Car) (*car.Car, error)
	UpdateCar(ctx context.Context, c *car.Car) (*car.Car, error)
	DeleteCar(ctx context.Context, id int64) (*car.Car, error)
	ActivateInactiveCars(ctx context.Context) (*dto.ActivationResult, error)
}

type carService struct {
	ServiceParams
}

func NewCarService(params ServiceParams) CarService {
	return &carService{
		ServiceParams: params,
	}
}

func (s *carService) ListCars(ctx context.Context) ([]*car.Car, error) {
	return s.CarRepo.FindAll(ctx)
}

func (s *carService) GetCar(ctx context.Context, id int64) (*car.Car, error) {
	c, err := s.CarRepo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ierr.NewError("car not found").
			WithHintf("Car with id %d not found.", id).
			WithReportableDetails(map[string]any{
				"car_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *carService) CreateCar(ctx context.Context, c *car.Car) (*car.Car, error) {
	if err := validator.ValidateRequest(c); err != nil {
		return nil, err
	}

	// identity always comes from storage
	c.ID = 0
	if err := s.CarRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created car", "car_id", c.ID, "brand", c.Brand)
	return c, nil
}

// UpdateCar overwrites an existing car. A car that is already active stays active.
func (s *carService) UpdateCar(ctx context.Context, c *car.Car) (*car.Car, error) {
	if err := validator.ValidateRequest(c); err != nil {
		return nil, err
	}

	existing, err := s.GetCar(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	// the repository merges status with the stored row at write time
	c.CreatedAt = existing.CreatedAt

	if err := s.CarRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("updated car", "car_id", c.ID)
	return c, nil
}

// DeleteCar removes the car and returns it as it was before removal
func (s *carService) DeleteCar(ctx context.Context, id int64) (*car.Car, error) {
	existing, err := s.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.CarRepo.Delete(ctx, existing); err != nil {
		return nil, err
	}

	s.Logger.Infow("deleted car", "car_id", id)
	return existing, nil
}

// ActivateInactiveCars promotes every inactive car. Each car is activated on its
// own with a status-only write, so concurrent edits to other fields survive; a
// failed write is logged and counted without stopping the others.
func (s *carService) ActivateInactiveCars(ctx context.Context) (*dto.ActivationResult, error) {
	inactive, err := s.CarRepo.FindByStatus(ctx, false)
	if err != nil {
		return nil, err
	}

	result := &dto.ActivationResult{
		Total:     len(inactive),
		FailedIDs: make([]int64, 0),
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(s.maxParallel())
	for _, c := range inactive {
		p.Go(func() {
			activated, err := s.CarRepo.Activate(ctx, c.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				s.Logger.Errorw("failed to activate car", "car_id", c.ID, "error", err)
				result.Failed++
				result.FailedIDs = append(result.FailedIDs, c.ID)
			case activated:
				result.Activated++
			default:
				// activated or deleted since the inactive query ran
				result.Skipped++
			}
		})
	}
	p.Wait()

	sort.Slice(result.FailedIDs, func(i, j int) bool {
		return result.FailedIDs[i] < result.FailedIDs[j]
	})

	s.Logger.Infow("activated inactive cars",
		"total", result.Total,
		"activated", result.Activated,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *carService) maxParallel() int {
	if s.Config == nil || s.Config.Activation.MaxParallel < 1 {
		return 1
	}
	return s.Config.Activation.MaxParallel
}

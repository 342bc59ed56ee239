package service

import (
	"context"

	"github.com/carsapp/cars/internal/domain/car"
	"github.com/carsapp/cars/internal/types"
	"github.com/carsapp/cars/internal/validator"
)

// CarQueueService accepts car writes and forwards them to the queue for the consumer to apply
type CarQueueService interface {
	EnqueueCreate(ctx context.Context, c *car.Car) (*car.Car, error)
	EnqueueUpdate(ctx context.Context, id int64, c *car.Car) (*car.Car, error)
	EnqueueDelete(ctx context.Context, id int64) (*car.Car, error)
}

type carQueueService struct {
	ServiceParams
	cars CarService
}

func NewCarQueueService(params ServiceParams, cars CarService) CarQueueService {
	return &carQueueService{
		ServiceParams: params,
		cars:          cars,
	}
}

func (s *carQueueService) EnqueueCreate(ctx context.Context, c *car.Car) (*car.Car, error) {
	if err := validator.ValidateRequest(c); err != nil {
		return nil, err
	}

	if err := s.CarPublisher.Publish(ctx, c, types.CarActionCreate); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *carQueueService) EnqueueUpdate(ctx context.Context, id int64, c *car.Car) (*car.Car, error) {
	if err := validator.ValidateRequest(c); err != nil {
		return nil, err
	}

	if _, err := s.cars.GetCar(ctx, id); err != nil {
		return nil, err
	}

	c.ID = id
	if err := s.CarPublisher.Publish(ctx, c, types.CarActionUpdate); err != nil {
		return nil, err
	}
	return c, nil
}

// EnqueueDelete sends the full stored car so the consumer can validate it like any other message
func (s *carQueueService) EnqueueDelete(ctx context.Context, id int64) (*car.Car, error) {
	existing, err := s.cars.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.CarPublisher.Publish(ctx, existing, types.CarActionDelete); err != nil {
		return nil, err
	}
	return existing, nil
}

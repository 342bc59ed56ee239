package service

import (
	"github.com/carsapp/cars/internal/carqueue/publisher"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/domain/car"
	"github.com/carsapp/cars/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	CarRepo car.Repository

	// Publishers
	CarPublisher publisher.CarPublisher
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	carRepo car.Repository,
	carPublisher publisher.CarPublisher,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		CarRepo:      carRepo,
		CarPublisher: carPublisher,
	}
}

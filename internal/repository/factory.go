package repository

import (
	"github.com/carsapp/cars/internal/domain/car"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/postgres"
	postgresRepo "github.com/carsapp/cars/internal/repository/postgres"
)

func NewCarRepository(db *postgres.DB, logger *logger.Logger) car.Repository {
	return postgresRepo.NewCarRepository(db, logger)
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/postgres"
	"github.com/cockroachdb/errors"
)

const carColumns = `id, brand, registration, country, status, created_at, updated_at`

type carRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	now    func() time.Time
}

func NewCarRepository(db *postgres.DB, logger *logger.Logger) car.Repository {
	return &carRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *carRepository) Create(ctx context.Context, c *car.Car) error {
	c.OnCreate(r.now())

	query := `
		INSERT INTO cars (
			brand, registration, country, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id`

	r.logger.Debugw("creating car", "brand", c.Brand, "country", c.Country)

	err := r.db.GetQuerier(ctx).
		QueryRowxContext(ctx, query, c.Brand, c.Registration, c.Country, c.Status, c.CreatedAt, c.UpdatedAt).
		Scan(&c.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create car").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *carRepository) Find(ctx context.Context, id int64) (*car.Car, error) {
	var c car.Car

	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to load car %d", id).
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *carRepository) FindAll(ctx context.Context) ([]*car.Car, error) {
	cars := make([]*car.Car, 0)

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &cars, `SELECT `+carColumns+` FROM cars ORDER BY id`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list cars").
			Mark(ierr.ErrDatabase)
	}
	return cars, nil
}

func (r *carRepository) FindByStatus(ctx context.Context, status bool) ([]*car.Car, error) {
	cars := make([]*car.Car, 0)

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &cars, `SELECT `+carColumns+` FROM cars WHERE status = $1 ORDER BY id`, status)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list cars by status").
			Mark(ierr.ErrDatabase)
	}
	return cars, nil
}

// Update never writes created_at and never clears status. The stored values are
// read back and updated_at is clamped to created_at so the pair stays ordered.
func (r *carRepository) Update(ctx context.Context, c *car.Car) error {
	c.OnUpdate(r.now())

	query := `
		UPDATE cars SET
			brand = $1,
			registration = $2,
			country = $3,
			status = cars.status OR $4,
			updated_at = GREATEST($5, created_at)
		WHERE id = $6
		RETURNING status, created_at, updated_at`

	r.logger.Debugw("updating car", "car_id", c.ID)

	err := r.db.GetQuerier(ctx).
		QueryRowxContext(ctx, query, c.Brand, c.Registration, c.Country, c.Status, c.UpdatedAt, c.ID).
		Scan(&c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ierr.NewError("car not found").
			WithHintf("Car with id %d not found.", c.ID).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to update car %d", c.ID).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *carRepository) Activate(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE cars SET
			status = TRUE,
			updated_at = GREATEST($1, created_at)
		WHERE id = $2 AND status = FALSE`

	r.logger.Debugw("activating car", "car_id", id)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, r.now(), id)
	if err != nil {
		return false, ierr.WithError(err).
			WithHintf("Failed to activate car %d", id).
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).
			WithHintf("Failed to activate car %d", id).
			Mark(ierr.ErrDatabase)
	}
	return affected > 0, nil
}

func (r *carRepository) Delete(ctx context.Context, c *car.Car) error {
	r.logger.Debugw("deleting car", "car_id", c.ID)

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, c.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to delete car %d", c.ID).
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to delete car %d", c.ID).
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError("car not found").
			WithHintf("Car with id %d not found.", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

package internal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/domain/car"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/postgres"
	"github.com/carsapp/cars/internal/repository"
	"github.com/samber/lo"
)

const carsTable = `
CREATE TABLE IF NOT EXISTS cars (
	id           BIGSERIAL PRIMARY KEY,
	brand        VARCHAR(50)  NOT NULL,
	registration TIMESTAMPTZ  NOT NULL,
	country      VARCHAR(100) NOT NULL,
	status       BOOLEAN      NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ  NOT NULL,
	updated_at   TIMESTAMPTZ  NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cars_status ON cars (status);`

var sampleBrands = []string{"BMW", "Audi", "Seat", "Renault", "Toyota", "Volvo"}

func openDB() (*postgres.DB, *logger.Logger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

// InitDatabase creates the cars table when it does not exist yet
func InitDatabase() error {
	db, log, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(context.Background(), carsTable); err != nil {
		return fmt.Errorf("failed to create cars table: %w", err)
	}

	log.Info("cars table is ready")
	return nil
}

// SeedCars inserts SEED_COUNT inactive cars, 10 when unset
func SeedCars() error {
	count := 10
	if raw := os.Getenv("SEED_COUNT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid seed count %q", raw)
		}
		count = n
	}

	db, log, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewCarRepository(db, log)
	ctx := context.Background()

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		brand := sampleBrands[i%len(sampleBrands)]
		registration := time.Now().UTC().AddDate(-i, 0, 0)

		c := car.New(brand, registration, "Spain")
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		ids = append(ids, c.ID)
	}

	log.Infow("seeded cars", "count", len(ids), "first_id", lo.Min(ids), "last_id", lo.Max(ids))
	return nil
}

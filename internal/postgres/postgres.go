package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/logger"
	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB wraps sqlx.DB with query tracing
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier interface defines the database operations the repositories use
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// NewDB opens the pool and retries the first ping with exponential backoff
// until postgres.connect_timeout elapses.
func NewDB(cfg *config.Configuration, log *logger.Logger) (*DB, error) {
	pg := cfg.Postgres

	db, err := sqlx.Open("postgres", pg.GetDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(pg.MaxOpenConns)
	db.SetMaxIdleConns(pg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeMinutes) * time.Minute)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = pg.ConnectTimeout
	if policy.MaxElapsedTime <= 0 {
		policy.MaxElapsedTime = 30 * time.Second
	}

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		pingErr := db.Ping()
		if pingErr != nil {
			log.Warnw("postgres not reachable yet",
				"host", pg.Host,
				"attempt", attempt,
				"error", pingErr)
		}
		return pingErr
	}, policy)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Infow("connected to postgres", "host", pg.Host, "dbname", pg.DBName)
	return &DB{DB: db, logger: log}, nil
}

// NewDBFromSQLX wraps an already opened handle
func NewDBFromSQLX(db *sqlx.DB, log *logger.Logger) *DB {
	return &DB{DB: db, logger: log}
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// GetQuerier returns a traced querier over the pool
func (db *DB) GetQuerier(ctx context.Context) Querier {
	return NewTracedQuerier(db.DB, db.logger)
}

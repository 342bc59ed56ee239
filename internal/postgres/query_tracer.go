package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/types"
	"github.com/jmoiron/sqlx"
)

// QueryTracer logs one statement with its duration and outcome
type QueryTracer struct {
	logger    *logger.Logger
	query     string
	params    interface{}
	start     time.Time
	requestID string
}

// NewQueryTracer creates a new query tracer
func NewQueryTracer(ctx context.Context, logger *logger.Logger, query string, params interface{}) *QueryTracer {
	return &QueryTracer{
		logger:    logger,
		query:     query,
		params:    params,
		start:     time.Now(),
		requestID: types.GetRequestID(ctx),
	}
}

// Done logs the query completion. sql.ErrNoRows is an outcome, not a failure.
func (qt *QueryTracer) Done(err error) {
	fields := []interface{}{
		"duration_ms", time.Since(qt.start).Milliseconds(),
		"query", qt.query,
		"params", fmt.Sprintf("%+v", qt.params),
	}
	if qt.requestID != "" {
		fields = append(fields, "request_id", qt.requestID)
	}
	if err != nil && err != sql.ErrNoRows {
		fields = append(fields, "error", err.Error())
		qt.logger.Errorw("database query failed", fields...)
		return
	}
	qt.logger.Debugw("database query completed", fields...)
}

// TracedQuerier wraps a Querier with tracing
type TracedQuerier struct {
	Querier
	logger *logger.Logger
}

// NewTracedQuerier creates a new traced querier
func NewTracedQuerier(q Querier, logger *logger.Logger) *TracedQuerier {
	return &TracedQuerier{
		Querier: q,
		logger:  logger,
	}
}

// ExecContext traces ExecContext calls
func (tq *TracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	tracer := NewQueryTracer(ctx, tq.logger, query, args)
	result, err := tq.Querier.ExecContext(ctx, query, args...)
	tracer.Done(err)
	return result, err
}

// QueryContext traces QueryContext calls
func (tq *TracedQuerier) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	tracer := NewQueryTracer(ctx, tq.logger, query, args)
	rows, err := tq.Querier.QueryContext(ctx, query, args...)
	tracer.Done(err)
	return rows, err
}

// QueryRowxContext traces QueryRowxContext calls; the row error surfaces on Scan
func (tq *TracedQuerier) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	tracer := NewQueryTracer(ctx, tq.logger, query, args)
	row := tq.Querier.QueryRowxContext(ctx, query, args...)
	tracer.Done(row.Err())
	return row
}

// GetContext traces GetContext calls
func (tq *TracedQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	tracer := NewQueryTracer(ctx, tq.logger, query, args)
	err := tq.Querier.GetContext(ctx, dest, query, args...)
	tracer.Done(err)
	return err
}

// SelectContext traces SelectContext calls
func (tq *TracedQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	tracer := NewQueryTracer(ctx, tq.logger, query, args)
	err := tq.Querier.SelectContext(ctx, dest, query, args...)
	tracer.Done(err)
	return err
}

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/carsapp/cars/internal/api/dto"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/metrics"
	"github.com/carsapp/cars/internal/pyroscope"
	"github.com/carsapp/cars/internal/sentry"
	"github.com/carsapp/cars/internal/service"
)

// ActivationJob promotes inactive cars. At most one run is in flight at a time.
type ActivationJob struct {
	cars      service.CarService
	logger    *logger.Logger
	metrics   *metrics.Metrics
	sentry    *sentry.Service
	pyroscope *pyroscope.Service

	running sync.Mutex
}

func NewActivationJob(
	cars service.CarService,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	sentry *sentry.Service,
	pyroscope *pyroscope.Service,
) *ActivationJob {
	return &ActivationJob{
		cars:      cars,
		logger:    logger,
		metrics:   metrics,
		sentry:    sentry,
		pyroscope: pyroscope,
	}
}

// Run performs one activation pass. A call made while another run is in flight
// returns ErrAlreadyRunning without touching storage.
func (j *ActivationJob) Run(ctx context.Context) (*dto.ActivationResult, error) {
	if !j.running.TryLock() {
		j.metrics.RecordActivationSkipped()
		return nil, ierr.NewError("activation already running").
			WithHint("Car activation is already running.").
			Mark(ierr.ErrAlreadyRunning)
	}
	defer j.running.Unlock()

	j.logger.Infow("starting car activation")
	start := time.Now()

	var (
		result *dto.ActivationResult
		err    error
	)
	j.pyroscope.TagWrapper(ctx, map[string]string{"job": "car_activation"}, func(ctx context.Context) {
		result, err = j.cars.ActivateInactiveCars(ctx)
	})

	duration := time.Since(start)
	if err != nil {
		j.metrics.RecordActivationRun(duration, 0, 0, err)
		j.sentry.CaptureException(err)
		j.logger.Errorw("car activation failed", "error", err, "duration_ms", duration.Milliseconds())
		return nil, err
	}

	j.metrics.RecordActivationRun(duration, result.Activated, result.Failed, nil)
	j.logger.Infow("finished car activation",
		"total", result.Total,
		"activated", result.Activated,
		"failed", result.Failed,
		"duration_ms", duration.Milliseconds(),
	)
	return result, nil
}

package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/carsapp/cars/internal/api/dto"
	"github.com/carsapp/cars/internal/carqueue/publisher"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/metrics"
	"github.com/carsapp/cars/internal/pyroscope"
	"github.com/carsapp/cars/internal/sentry"
	"github.com/carsapp/cars/internal/service"
	"github.com/carsapp/cars/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingCarService parks ActivateInactiveCars until released
type blockingCarService struct {
	service.CarService
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCarService) ActivateInactiveCars(ctx context.Context) (*dto.ActivationResult, error) {
	b.entered <- struct{}{}
	<-b.release
	return &dto.ActivationResult{FailedIDs: []int64{}}, nil
}

func newJob(t *testing.T, cars service.CarService) *ActivationJob {
	t.Helper()
	cfg := config.GetDefaultConfig()
	log := logger.NewNopLogger()
	return NewActivationJob(cars, log, metrics.New(), sentry.NewSentryService(cfg, log), pyroscope.NewPyroscopeService(cfg, log))
}

func newCarService(store *testutil.InMemoryCarStore) service.CarService {
	cfg := config.GetDefaultConfig()
	log := logger.NewNopLogger()
	params := service.NewServiceParams(log, cfg, store, publisher.NewPublisher(testutil.NewInMemoryPubSub(), cfg, log, metrics.New()))
	return service.NewCarService(params)
}

func TestRunActivatesInactiveCars(t *testing.T) {
	store := testutil.NewInMemoryCarStore()
	cars := newCarService(store)
	for _, brand := range []string{"BMW", "Audi"} {
		_, err := cars.CreateCar(context.Background(), car.New(brand, time.Now(), "Spain"))
		require.NoError(t, err)
	}

	result, err := newJob(t, cars).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Activated)

	inactive, err := store.FindByStatus(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, inactive)
}

func TestRunIsNotReentrant(t *testing.T) {
	blocking := &blockingCarService{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	job := newJob(t, blocking)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := job.Run(context.Background())
		assert.NoError(t, err)
	}()
	<-blocking.entered

	_, err := job.Run(context.Background())
	assert.True(t, ierr.IsAlreadyRunning(err))
	assert.Equal(t, 409, ierr.HTTPStatusFromErr(err))

	close(blocking.release)
	wg.Wait()

	// free again once the first run finished
	go func() { <-blocking.entered }()
	_, err = job.Run(context.Background())
	assert.NoError(t, err)
}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Activation.Schedule = "every now and then"

	_, err := NewScheduler(cfg, newJob(t, newCarService(testutil.NewInMemoryCarStore())), logger.NewNopLogger())
	assert.Error(t, err)
}

func TestSchedulerStartStop(t *testing.T) {
	cfg := config.GetDefaultConfig()
	s, err := NewScheduler(cfg, newJob(t, newCarService(testutil.NewInMemoryCarStore())), logger.NewNopLogger())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

package scheduler

import (
	"context"

	"github.com/carsapp/cars/internal/config"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the activation job on the configured cron schedule
type Scheduler struct {
	cron   *cron.Cron
	job    *ActivationJob
	config *config.ActivationConfig
	logger *logger.Logger
}

func NewScheduler(cfg *config.Configuration, job *ActivationJob, logger *logger.Logger) (*Scheduler, error) {
	cronLogger := logger.GetCronLogger()
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		),
	)

	s := &Scheduler{
		cron:   c,
		job:    job,
		config: &cfg.Activation,
		logger: logger,
	}

	if _, err := c.AddFunc(cfg.Activation.Schedule, s.tick); err != nil {
		return nil, errors.Wrapf(err, "invalid activation schedule %q", cfg.Activation.Schedule)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	_, err := s.job.Run(context.Background())
	if ierr.IsAlreadyRunning(err) {
		s.logger.Infow("skipping activation tick, a run is in flight")
	}
}

// Start begins ticking in the background unless activation is disabled
func (s *Scheduler) Start() {
	if !s.config.Enabled {
		s.logger.Info("car activation schedule is disabled")
		return
	}
	s.logger.Infow("starting car activation schedule", "schedule", s.config.Schedule)
	s.cron.Start()
}

// Stop stops ticking and waits for a running job to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

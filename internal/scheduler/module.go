package scheduler

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the activation job and its cron schedule
var Module = fx.Options(
	fx.Provide(
		NewActivationJob,
		NewScheduler,
	),
)

// RegisterHooks ties the schedule to the application lifecycle
func RegisterHooks(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("stopping car activation schedule")
			return s.Stop(ctx)
		},
	})
}

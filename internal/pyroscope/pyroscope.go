package pyroscope

import (
	"context"
	"strings"

	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/types"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/fx"
)

type Service struct {
	cfg      *config.Configuration
	logger   *logger.Logger
	profiler *pyroscope.Profiler
}

// Module provides fx options for Pyroscope
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewPyroscopeService),
		fx.Invoke(RegisterHooks),
	)
}

// RegisterHooks starts the profiler with the app and stops it on shutdown
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !svc.cfg.Pyroscope.Enabled {
				svc.logger.Info("Pyroscope profiling is disabled")
				return nil
			}

			profileTypes := svc.getProfileTypes()

			pyroscopeConfig := pyroscope.Config{
				ApplicationName: svc.cfg.Pyroscope.ApplicationName,
				ServerAddress:   svc.cfg.Pyroscope.ServerAddress,
				ProfileTypes:    profileTypes,
				SampleRate:      svc.cfg.Pyroscope.SampleRate,
				DisableGCRuns:   svc.cfg.Pyroscope.DisableGCRuns,
				Logger:          svc,
				Tags: map[string]string{
					"mode": string(svc.cfg.Deployment.Mode),
				},
			}

			if svc.cfg.Pyroscope.BasicAuthUser != "" {
				pyroscopeConfig.BasicAuthUser = svc.cfg.Pyroscope.BasicAuthUser
				pyroscopeConfig.BasicAuthPassword = svc.cfg.Pyroscope.BasicAuthPass
			}

			profiler, err := pyroscope.Start(pyroscopeConfig)
			if err != nil {
				svc.logger.Errorw("Failed to initialize Pyroscope", "error", err)
				return err
			}
			svc.logger.Infow("Pyroscope profiling initialized successfully",
				"application_name", svc.cfg.Pyroscope.ApplicationName,
				"server_address", svc.cfg.Pyroscope.ServerAddress,
				"profile_types", profileTypes,
			)

			svc.profiler = profiler
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if svc.profiler == nil {
				return nil
			}
			svc.logger.Info("Stopping Pyroscope profiling")
			return svc.profiler.Stop()
		},
	})
}

// pyroscope.Logger
func (s *Service) Debugf(format string, args ...interface{}) {
	if s.cfg.Logging.Level == types.LogLevelDebug {
		s.logger.Debugf("[Pyroscope] "+format, args...)
	}
}

func (s *Service) Infof(format string, args ...interface{}) {
	s.logger.Infof("[Pyroscope] "+format, args...)
}

func (s *Service) Errorf(format string, args ...interface{}) {
	s.logger.Errorf("[Pyroscope] "+format, args...)
}

// NewPyroscopeService creates a new Pyroscope service
func NewPyroscopeService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// IsEnabled returns whether Pyroscope profiling is enabled
func (s *Service) IsEnabled() bool {
	return s.cfg.Pyroscope.Enabled
}

var profileTypesByName = map[string]pyroscope.ProfileType{
	"cpu":            pyroscope.ProfileCPU,
	"inuse_objects":  pyroscope.ProfileInuseObjects,
	"alloc_objects":  pyroscope.ProfileAllocObjects,
	"inuse_space":    pyroscope.ProfileInuseSpace,
	"alloc_space":    pyroscope.ProfileAllocSpace,
	"goroutines":     pyroscope.ProfileGoroutines,
	"mutex_count":    pyroscope.ProfileMutexCount,
	"mutex_duration": pyroscope.ProfileMutexDuration,
	"block_count":    pyroscope.ProfileBlockCount,
	"block_duration": pyroscope.ProfileBlockDuration,
}

func (s *Service) getProfileTypes() []pyroscope.ProfileType {
	if len(s.cfg.Pyroscope.ProfileTypes) == 0 {
		return []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
		}
	}

	var profileTypes []pyroscope.ProfileType
	for _, name := range s.cfg.Pyroscope.ProfileTypes {
		pt, ok := profileTypesByName[strings.ToLower(name)]
		if !ok {
			s.logger.Warnw("Unknown profile type", "type", name)
			continue
		}
		profileTypes = append(profileTypes, pt)
	}
	return profileTypes
}

// TagWrapper runs fn with profiling labels attached
func (s *Service) TagWrapper(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	if !s.IsEnabled() {
		fn(ctx)
		return
	}

	var labelPairs []string
	for key, value := range labels {
		labelPairs = append(labelPairs, key, value)
	}

	pyroscope.TagWrapper(ctx, pyroscope.Labels(labelPairs...), fn)
}

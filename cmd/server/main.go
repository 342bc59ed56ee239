package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/carsapp/cars/internal/api"
	"github.com/carsapp/cars/internal/api/cron"
	v1 "github.com/carsapp/cars/internal/api/v1"
	"github.com/carsapp/cars/internal/carqueue"
	"github.com/carsapp/cars/internal/carqueue/handler"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/metrics"
	"github.com/carsapp/cars/internal/postgres"
	pubsubRouter "github.com/carsapp/cars/internal/pubsub/router"
	"github.com/carsapp/cars/internal/pyroscope"
	"github.com/carsapp/cars/internal/repository"
	"github.com/carsapp/cars/internal/scheduler"
	"github.com/carsapp/cars/internal/sentry"
	"github.com/carsapp/cars/internal/service"
	"github.com/carsapp/cars/internal/types"
	"github.com/carsapp/cars/internal/validator"
	"go.uber.org/fx"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Metrics
			metrics.New,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewCarRepository,

			// PubSub
			pubsubRouter.NewRouter,
		),
	)

	// Monitoring
	opts = append(opts,
		sentry.Module(),
		pyroscope.Module(),
	)

	// Queue transport, publisher and consumer
	opts = append(opts, carqueue.Module)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewCarService,
			service.NewCarQueueService,
		),
	)

	// Activation job
	opts = append(opts, scheduler.Module)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			registerDBHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	carService service.CarService,
	carQueueService service.CarQueueService,
	activationJob *scheduler.ActivationJob,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		Car:      v1.NewCarHandler(carService, logger),
		CarQueue: v1.NewCarQueueHandler(carQueueService, logger),
		CronCar:  cron.NewCarCronHandler(logger, activationJob),
	}
}

func provideRouter(
	handlers api.Handlers,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	pyroscope *pyroscope.Service,
	sentrySvc *sentry.Service,
) *gin.Engine {
	return api.NewRouter(handlers, logger, metrics, pyroscope, sentrySvc)
}

func registerDBHooks(lc fx.Lifecycle, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Closing database connections...")
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	carHandler handler.Handler,
	activation *scheduler.Scheduler,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, carHandler, log)
		scheduler.RegisterHooks(lc, activation)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		scheduler.RegisterHooks(lc, activation)
	case types.ModeConsumer:
		startMessageRouter(lc, router, carHandler, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(r)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	carHandler handler.Handler,
	log *logger.Logger,
) {
	carHandler.RegisterHandler(router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting message router...")
			go func() {
				if err := router.Run(context.Background()); err != nil {
					log.Errorw("message router stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down message router...")
			return router.Close()
		},
	})
}

func startAWSLambdaAPI(r *gin.Engine) {
	ginLambda := ginadapter.New(r)
	lambda.Start(ginLambda.ProxyWithContext)
}

package api

import (
	"github.com/carsapp/cars/internal/api/cron"
	v1 "github.com/carsapp/cars/internal/api/v1"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/metrics"
	"github.com/carsapp/cars/internal/pyroscope"
	"github.com/carsapp/cars/internal/rest/middleware"
	"github.com/carsapp/cars/internal/sentry"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Car      *v1.CarHandler
	CarQueue *v1.CarQueueHandler

	CronCar *cron.CarCronHandler
}

func NewRouter(
	handlers Handlers,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	pyroscope *pyroscope.Service,
	sentrySvc *sentry.Service,
) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middleware.Recovery(logger),
		middleware.CORSMiddleware,
		middleware.RequestIDMiddleware,
		middleware.SentryMiddleware(sentrySvc),
		middleware.PyroscopeMiddleware(pyroscope),
		middleware.MetricsMiddleware(metrics),
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(logger),
	)

	router.NoRoute(func(c *gin.Context) {
		c.Error(ierr.NewError("route not found").
			WithHintf("No resource found at %s.", c.Request.URL.Path).
			Mark(ierr.ErrNotFound))
	})
	router.NoMethod(func(c *gin.Context) {
		c.Error(ierr.NewError("method not allowed").
			WithHintf("Method %s is not allowed on %s.", c.Request.Method, c.Request.URL.Path).
			Mark(ierr.ErrMethodNotAllowed))
	})

	router.GET("/health", handlers.Health.Health)
	router.HEAD("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	cars := router.Group("/cars")
	{
		cars.GET("", handlers.Car.ListCars)
		cars.POST("", handlers.Car.CreateCar)
		cars.GET("/:id", handlers.Car.GetCar)
		cars.PUT("/:id", handlers.Car.UpdateCar)
		cars.DELETE("/:id", handlers.Car.DeleteCar)
	}

	queue := router.Group("/jms/cars")
	{
		queue.POST("", handlers.CarQueue.EnqueueCreate)
		queue.PUT("/:id", handlers.CarQueue.EnqueueUpdate)
		queue.DELETE("/:id", handlers.CarQueue.EnqueueDelete)
	}

	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/cars/activate", handlers.CronCar.ActivateCars)
	}

	return router
}

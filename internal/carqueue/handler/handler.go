package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/metrics"
	"github.com/carsapp/cars/internal/pubsub"
	pubsubRouter "github.com/carsapp/cars/internal/pubsub/router"
	"github.com/carsapp/cars/internal/sentry"
	"github.com/carsapp/cars/internal/service"
	"github.com/carsapp/cars/internal/types"
	"github.com/carsapp/cars/internal/validator"
)

// Handler consumes car messages and applies them through the car service
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
	ProcessMessage(msg *message.Message) error
}

type handler struct {
	subscriber pubsub.Subscriber
	service    service.CarService
	config     *config.QueueConfig
	logger     *logger.Logger
	sentry     *sentry.Service
	metrics    *metrics.Metrics
}

func NewHandler(
	subscriber pubsub.Subscriber,
	service service.CarService,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentry *sentry.Service,
	metrics *metrics.Metrics,
) Handler {
	return &handler{
		subscriber: subscriber,
		service:    service,
		config:     &cfg.Queue,
		logger:     logger,
		sentry:     sentry,
		metrics:    metrics,
	}
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"car_queue_handler",
		h.config.Topic,
		h.subscriber,
		h.ProcessMessage,
	)
}

// ProcessMessage applies one car message. Every failure is logged and the
// message acked: a bad message is dropped, never redelivered or fatal.
func (h *handler) ProcessMessage(msg *message.Message) (err error) {
	action := types.CarAction(msg.Metadata.Get(types.MetadataKeyAction))

	ctx := msg.Context()
	if correlationID := middleware.MessageCorrelationID(msg); correlationID != "" {
		ctx = types.SetRequestID(ctx, correlationID)
	}

	span, ctx := h.sentry.StartQueueConsumerSpan(ctx, h.config.Topic, action.String())
	if span != nil {
		defer span.Finish()
	}

	defer func() {
		if r := recover(); r != nil {
			h.fail(msg, action, ierr.NewError(fmt.Sprintf("panic while processing car message: %v", r)).
				Mark(ierr.ErrSystem))
		}
		err = nil
	}()

	c, procErr := h.process(ctx, msg, action)
	if procErr != nil {
		h.fail(msg, action, procErr)
		return nil
	}

	h.metrics.RecordConsumed(action.String(), metrics.ResultSuccess)
	h.logger.Infow("processed car message",
		"message_uuid", msg.UUID,
		"action", action,
		"car_id", c.ID,
	)
	return nil
}

func (h *handler) process(ctx context.Context, msg *message.Message, action types.CarAction) (*car.Car, error) {
	var c car.Car
	if err := json.Unmarshal(msg.Payload, &c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Car message payload is not a valid car.").
			Mark(ierr.ErrInvalidCarMessage)
	}

	if violations := validator.Violations(&c); len(violations) > 0 {
		return nil, ierr.NewError("car message failed validation").
			WithHints(violations).
			WithReportableDetails(map[string]any{
				"violations": violations,
			}).
			Mark(ierr.ErrInvalidCarMessage)
	}

	switch action {
	case types.CarActionCreate:
		return h.service.CreateCar(ctx, &c)
	case types.CarActionUpdate:
		return h.service.UpdateCar(ctx, &c)
	case types.CarActionDelete:
		return h.service.DeleteCar(ctx, c.ID)
	default:
		return nil, ierr.NewError("invalid car action").
			WithHintf("Unknown action %q.", action.String()).
			Mark(ierr.ErrInvalidAction)
	}
}

func (h *handler) fail(msg *message.Message, action types.CarAction, err error) {
	h.metrics.RecordConsumed(action.String(), metrics.ResultFailure)

	fields := []interface{}{
		"error", err,
		"message_uuid", msg.UUID,
		"action", action,
		"hints", ierr.GetHints(err),
	}

	switch {
	case ierr.IsInvalidCarMessage(err):
		h.logger.Warnw("rejected invalid car message", fields...)
	case ierr.IsInvalidAction(err):
		h.logger.Warnw("rejected car message with unknown action", fields...)
	case ierr.IsNotFound(err), ierr.IsValidation(err):
		h.logger.Warnw("car message could not be applied", fields...)
	default:
		h.sentry.CaptureException(err)
		h.logger.Errorw("failed to process car message", fields...)
	}
}

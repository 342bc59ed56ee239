package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/metrics"
	"github.com/carsapp/cars/internal/pubsub"
	"github.com/carsapp/cars/internal/types"
)

// CarPublisher forwards car write intents to the queue
type CarPublisher interface {
	Publish(ctx context.Context, c *car.Car, action types.CarAction) error
}

type carPublisher struct {
	connector pubsub.Connector
	config    *config.QueueConfig
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// NewPublisher creates a publisher that opens one session per message
func NewPublisher(
	connector pubsub.Connector,
	cfg *config.Configuration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) CarPublisher {
	return &carPublisher{
		connector: connector,
		config:    &cfg.Queue,
		logger:    logger,
		metrics:   metrics,
	}
}

func (p *carPublisher) Publish(ctx context.Context, c *car.Car, action types.CarAction) (err error) {
	defer func() {
		p.metrics.RecordPublish(action.String(), err)
	}()

	if !action.IsValid() {
		return ierr.NewError("invalid car action").
			WithHintf("Unknown action %q.", action.String()).
			Mark(ierr.ErrInvalidAction)
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode car message").
			Mark(ierr.ErrSystem)
	}

	session, err := p.connector.Connect(ctx)
	if err != nil {
		p.logger.Errorw("failed to connect to car queue",
			"error", err,
			"topic", p.config.Topic,
		)
		return ierr.WithError(err).
			WithHint("Car queue is not reachable").
			Mark(ierr.ErrSystem)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			p.logger.Errorw("failed to close car queue session", "error", closeErr)
		}
	}()

	msg := message.NewMessage(types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CAR_MESSAGE), payload)
	msg.Metadata.Set(types.MetadataKeyAction, action.String())
	if requestID := types.GetRequestID(ctx); requestID != "" {
		middleware.SetCorrelationID(requestID, msg)
	}

	p.logger.Debugw("publishing car message",
		"message_uuid", msg.UUID,
		"action", action,
		"car_id", c.ID,
		"topic", p.config.Topic,
	)

	if err := session.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish car message",
			"error", err,
			"message_uuid", msg.UUID,
			"action", action,
			"car_id", c.ID,
		)
		return ierr.WithError(err).
			WithHint("Failed to publish car message").
			Mark(ierr.ErrSystem)
	}

	p.logger.Infow("published car message",
		"message_uuid", msg.UUID,
		"action", action,
		"car_id", c.ID,
	)
	return nil
}

package carqueue

import (
	"context"

	"github.com/carsapp/cars/internal/carqueue/handler"
	"github.com/carsapp/cars/internal/carqueue/publisher"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/kafka"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/pubsub"
	kafkaPubSub "github.com/carsapp/cars/internal/pubsub/kafka"
	"github.com/carsapp/cars/internal/pubsub/memory"
	"github.com/carsapp/cars/internal/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
)

// Module provides all car queue dependencies
var Module = fx.Options(
	fx.Provide(
		// Transport selected by queue.pubsub
		providePubSub,

		// Publisher used by the jms/cars surface
		publisher.NewPublisher,

		// Consumer applying messages to storage
		handler.NewHandler,
	),
	fx.Invoke(registerHooks),
)

// PubSubResult exposes one transport under every role it plays
type PubSubResult struct {
	fx.Out

	PubSub     pubsub.PubSub
	Subscriber pubsub.Subscriber
	Connector  pubsub.Connector
}

type connectorPubSub interface {
	pubsub.PubSub
	pubsub.Connector
}

func providePubSub(cfg *config.Configuration, logger *logger.Logger) (PubSubResult, error) {
	ps, err := newPubSub(cfg, logger)
	if err != nil {
		return PubSubResult{}, err
	}
	return PubSubResult{
		PubSub:     ps,
		Subscriber: ps,
		Connector:  ps,
	}, nil
}

func newPubSub(cfg *config.Configuration, logger *logger.Logger) (connectorPubSub, error) {
	switch cfg.Queue.PubSub {
	case types.MemoryPubSub:
		return memory.NewPubSub(logger), nil
	case types.KafkaPubSub:
		consumer, err := kafka.NewConsumer(cfg, logger)
		if err != nil {
			return nil, err
		}
		return kafkaPubSub.NewPubSub(cfg, logger, consumer), nil
	}
	return nil, errors.Newf("unsupported pubsub type %q", cfg.Queue.PubSub)
}

func registerHooks(lc fx.Lifecycle, ps pubsub.PubSub, logger *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing car queue transport")
			return ps.Close()
		},
	})
}

package kafka

import (
	"context"

	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/logger"
)

type Consumer struct {
	subscriber message.Subscriber
}

func NewConsumer(cfg *config.Configuration, logger *logger.Logger) (*Consumer, error) {
	group := cfg.Queue.ConsumerGroup
	if group == "" {
		group = cfg.Kafka.ConsumerGroup
	}

	subscriber, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:               cfg.Kafka.Brokers,
			ConsumerGroup:         group,
			Unmarshaler:           kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: GetSaramaConfig(cfg),
		},
		logger.GetWatermillLogger(),
	)
	if err != nil {
		return nil, err
	}

	return &Consumer{subscriber: subscriber}, nil
}

func (c *Consumer) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return c.subscriber.Subscribe(ctx, topic)
}

func (c *Consumer) Close() error {
	return c.subscriber.Close()
}

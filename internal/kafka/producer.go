package kafka

import (
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/logger"
)

type Producer struct {
	publisher message.Publisher
}

func NewProducer(cfg *config.Configuration, logger *logger.Logger) (*Producer, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:               cfg.Kafka.Brokers,
			Marshaler:             kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: GetSaramaConfig(cfg),
		},
		logger.GetWatermillLogger(),
	)
	if err != nil {
		return nil, err
	}

	return &Producer{publisher: publisher}, nil
}

func (p *Producer) Publish(topic string, msgs ...*message.Message) error {
	return p.publisher.Publish(topic, msgs...)
}

func (p *Producer) Close() error {
	return p.publisher.Close()
}

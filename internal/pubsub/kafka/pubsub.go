package kafka

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/carsapp/cars/internal/config"
	"github.com/carsapp/cars/internal/kafka"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/pubsub"
)

// producer is the part of kafka.Producer a session needs
type producer interface {
	Publish(topic string, msgs ...*message.Message) error
	Close() error
}

// PubSub publishes and consumes car queue messages through Kafka. Every publish
// runs on a producer owned by one session.
type PubSub struct {
	consumer    message.Subscriber
	newProducer func() (producer, error)
	logger      *logger.Logger
}

// NewPubSub creates a new kafka-based pubsub
func NewPubSub(
	config *config.Configuration,
	logger *logger.Logger,
	consumer *kafka.Consumer,
) *PubSub {
	return &PubSub{
		consumer: consumer,
		newProducer: func() (producer, error) {
			return kafka.NewProducer(config, logger)
		},
		logger: logger,
	}
}

// Publish sends one message over a session opened for it
func (p *PubSub) Publish(ctx context.Context, topic string, msg *message.Message) (err error) {
	session, err := p.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return session.Publish(ctx, topic, msg)
}

// Subscribe starts consuming car queue messages
func (p *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.consumer.Subscribe(ctx, topic)
}

// Connect opens a dedicated producer that lives until the session is closed
func (p *PubSub) Connect(ctx context.Context) (pubsub.Session, error) {
	producer, err := p.newProducer()
	if err != nil {
		p.logger.Errorw("failed to open kafka producer", "error", err)
		return nil, err
	}
	return &session{producer: producer}, nil
}

// Close closes the consumer; sessions close their own producers
func (p *PubSub) Close() error {
	return p.consumer.Close()
}

type session struct {
	producer producer
}

func (s *session) Publish(ctx context.Context, topic string, msg *message.Message) error {
	return s.producer.Publish(topic, msg)
}

func (s *session) Close() error {
	return s.producer.Close()
}

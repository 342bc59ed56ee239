package memory

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/carsapp/cars/internal/logger"
	"github.com/carsapp/cars/internal/pubsub"
)

// PubSub implements both Publisher and Subscriber interfaces using watermill's gochannel
type PubSub struct {
	pubsub *gochannel.GoChannel
	logger *logger.Logger
}

// NewPubSub creates a new memory-based pubsub
func NewPubSub(logger *logger.Logger) *PubSub {
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{
			// Keep messages published before the consumer subscribes
			Persistent:                     true,
			BlockPublishUntilSubscriberAck: false,
			OutputChannelBuffer:            100,
		},
		logger.GetWatermillLogger(),
	)

	return &PubSub{
		pubsub: goChannel,
		logger: logger,
	}
}

// Publish publishes a car queue message
func (p *PubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	return p.pubsub.Publish(topic, msg)
}

// Subscribe starts consuming car queue messages
func (p *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.pubsub.Subscribe(ctx, topic)
}

// Connect returns a session over the shared channel
func (p *PubSub) Connect(ctx context.Context) (pubsub.Session, error) {
	return &session{pubsub: p.pubsub}, nil
}

// Close closes both publisher and subscriber
func (p *PubSub) Close() error {
	return p.pubsub.Close()
}

type session struct {
	pubsub *gochannel.GoChannel
}

func (s *session) Publish(ctx context.Context, topic string, msg *message.Message) error {
	return s.pubsub.Publish(topic, msg)
}

// Close is a no-op: the channel outlives every session
func (s *session) Close() error {
	return nil
}

package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher defines the interface for publishing car queue messages
type Publisher interface {
	// Publish publishes a message to the topic
	Publish(ctx context.Context, topic string, msg *message.Message) error
	// Close closes the publisher
	Close() error
}

// Subscriber defines the interface for consuming car queue messages
type Subscriber interface {
	// Subscribe starts consuming the topic
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	// Close closes the subscriber
	Close() error
}

// PubSub combines both Publisher and Subscriber interfaces
type PubSub interface {
	Publisher
	Subscriber
}

// Session is a publishing handle scoped to one send.
// Callers must Close it on every exit path.
type Session interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
	Close() error
}

// Connector opens publishing sessions
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

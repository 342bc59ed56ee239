package testutil

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/carsapp/cars/internal/pubsub"
)

// InMemoryPubSub is an in-memory implementation of pubsub.PubSub and pubsub.Connector
// that records published messages and tracks publishing sessions
type InMemoryPubSub struct {
	subscribers map[string][]chan *message.Message
	messages    map[string][]*message.Message
	mu          sync.RWMutex

	// ConnectErr and PublishErr, when set, fail the matching call
	ConnectErr error
	PublishErr error

	opened int
	closed int
}

// NewInMemoryPubSub creates a new instance of InMemoryPubSub
func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		subscribers: make(map[string][]chan *message.Message),
		messages:    make(map[string][]*message.Message),
	}
}

// Publish implements pubsub.Publisher interface
func (ps *InMemoryPubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.PublishErr != nil {
		return ps.PublishErr
	}

	ps.messages[topic] = append(ps.messages[topic], msg)

	for _, ch := range ps.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			// subscriber buffer full, the message stays recorded
		}
	}

	return nil
}

// Subscribe implements pubsub.Subscriber interface
func (ps *InMemoryPubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan *message.Message, 100)
	ps.subscribers[topic] = append(ps.subscribers[topic], ch)

	if messages, ok := ps.messages[topic]; ok {
		backlog := append([]*message.Message(nil), messages...)
		go func() {
			for _, msg := range backlog {
				select {
				case ch <- msg:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	return ch, nil
}

// Connect implements pubsub.Connector interface
func (ps *InMemoryPubSub) Connect(ctx context.Context) (pubsub.Session, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ConnectErr != nil {
		return nil, ps.ConnectErr
	}
	ps.opened++
	return &inMemorySession{ps: ps}, nil
}

// Close implements pubsub.PubSub interface
func (ps *InMemoryPubSub) Close() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for _, subscribers := range ps.subscribers {
		for _, ch := range subscribers {
			close(ch)
		}
	}

	ps.subscribers = make(map[string][]chan *message.Message)
	ps.messages = make(map[string][]*message.Message)

	return nil
}

// GetMessages returns all messages published to a topic
func (ps *InMemoryPubSub) GetMessages(topic string) []*message.Message {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return append([]*message.Message(nil), ps.messages[topic]...)
}

// ClearMessages clears all stored messages
func (ps *InMemoryPubSub) ClearMessages() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.messages = make(map[string][]*message.Message)
}

// Sessions returns how many sessions were opened and closed
func (ps *InMemoryPubSub) Sessions() (opened, closed int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.opened, ps.closed
}

type inMemorySession struct {
	ps *InMemoryPubSub
}

func (s *inMemorySession) Publish(ctx context.Context, topic string, msg *message.Message) error {
	return s.ps.Publish(ctx, topic, msg)
}

func (s *inMemorySession) Close() error {
	s.ps.mu.Lock()
	defer s.ps.mu.Unlock()
	s.ps.closed++
	return nil
}

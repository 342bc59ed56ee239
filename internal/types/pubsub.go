package types

// PubSubType defines the type of pubsub implementation
type PubSubType string

const (
	// MemoryPubSub uses in-memory implementation
	MemoryPubSub PubSubType = "memory"

	// KafkaPubSub uses Kafka implementation
	KafkaPubSub PubSubType = "kafka"
)

// CarAction is the out-of-band tag carried by every car queue message
type CarAction string

const (
	CarActionCreate CarAction = "POST"
	CarActionUpdate CarAction = "PUT"
	CarActionDelete CarAction = "DELETE"

	// MetadataKeyAction is the message metadata key holding the CarAction
	MetadataKeyAction = "action"
)

func (a CarAction) String() string {
	return string(a)
}

// IsValid reports whether the action is one the consumer knows how to dispatch
func (a CarAction) IsValid() bool {
	switch a {
	case CarActionCreate, CarActionUpdate, CarActionDelete:
		return true
	}
	return false
}

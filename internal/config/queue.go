package config

import "github.com/carsapp/cars/internal/types"

// QueueConfig represents the configuration for the car message queue
type QueueConfig struct {
	PubSub        types.PubSubType `mapstructure:"pubsub" validate:"required,oneof=memory kafka"`
	Topic         string           `mapstructure:"topic" validate:"required"`
	ConsumerGroup string           `mapstructure:"consumer_group"`
}

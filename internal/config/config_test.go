package config

import (
	"testing"

	"github.com/carsapp/cars/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Postgres = PostgresConfig{Host: "localhost", Port: 5432}
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownPubSub(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Postgres = PostgresConfig{Host: "localhost", Port: 5432}
	cfg.Queue.PubSub = types.PubSubType("rabbitmq")
	assert.Error(t, cfg.Validate())
}

func TestNewConfigReadsEnvironment(t *testing.T) {
	t.Setenv("CARS_SERVER_ADDRESS", ":9999")
	t.Setenv("CARS_QUEUE_TOPIC", "cars-test")
	t.Setenv("CARS_ACTIVATION_SCHEDULE", "*/5 * * * *")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "cars-test", cfg.Queue.Topic)
	assert.Equal(t, "*/5 * * * *", cfg.Activation.Schedule)
	assert.Equal(t, types.MemoryPubSub, cfg.Queue.PubSub)
}

func TestGetDSN(t *testing.T) {
	c := PostgresConfig{
		Host:     "db",
		Port:     5433,
		User:     "u",
		Password: "p",
		DBName:   "cars",
		SSLMode:  "disable",
	}
	assert.Equal(t, "user=u password=p dbname=cars host=db port=5433 sslmode=disable", c.GetDSN())
}

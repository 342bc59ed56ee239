package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carsapp/cars/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Queue      QueueConfig      `validate:"required"`
	Kafka      KafkaConfig
	Activation ActivationConfig
	Sentry     SentryConfig
	Pyroscope  PyroscopeConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host                   string        `mapstructure:"host"`
	Port                   int           `mapstructure:"port"`
	User                   string        `mapstructure:"user"`
	Password               string        `mapstructure:"password"`
	DBName                 string        `mapstructure:"dbname"`
	SSLMode                string        `mapstructure:"sslmode"`
	MaxOpenConns           int           `mapstructure:"max_open_conns"`
	MaxIdleConns           int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int           `mapstructure:"conn_max_lifetime_minutes"`
	ConnectTimeout         time.Duration `mapstructure:"connect_timeout"`
}

type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
	ClientID      string   `mapstructure:"client_id"`
	TLS           bool     `mapstructure:"tls"`
	UseSASL       bool     `mapstructure:"use_sasl"`
	SASLMechanism string   `mapstructure:"sasl_mechanism"`
	SASLUser      string   `mapstructure:"sasl_user"`
	SASLPassword  string   `mapstructure:"sasl_password"`
}

// ActivationConfig drives the periodic job promoting inactive cars
type ActivationConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Schedule    string `mapstructure:"schedule"`
	MaxParallel int    `mapstructure:"max_parallel"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	ServerAddress   string   `mapstructure:"server_address"`
	ApplicationName string   `mapstructure:"application_name"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_pass"`
	SampleRate      uint32   `mapstructure:"sample_rate"`
	DisableGCRuns   bool     `mapstructure:"disable_gc_runs"`
	ProfileTypes    []string `mapstructure:"profile_types"`
}

func NewConfig() (*Configuration, error) {
	// A missing .env is the normal case outside local development
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cars")

	v.SetEnvPrefix("CARS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from config.yaml
func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "cars")
	v.SetDefault("postgres.password", "cars")
	v.SetDefault("postgres.dbname", "cars")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("postgres.connect_timeout", 30*time.Second)

	v.SetDefault("queue.pubsub", types.MemoryPubSub)
	v.SetDefault("queue.topic", "cars")
	v.SetDefault("queue.consumer_group", "cars-consumer")

	v.SetDefault("kafka.brokers", []string{"localhost:29092"})
	v.SetDefault("kafka.consumer_group", "")
	v.SetDefault("kafka.client_id", "cars-service")
	v.SetDefault("kafka.tls", false)
	v.SetDefault("kafka.use_sasl", false)
	v.SetDefault("kafka.sasl_mechanism", "PLAIN")
	v.SetDefault("kafka.sasl_user", "")
	v.SetDefault("kafka.sasl_password", "")

	v.SetDefault("activation.enabled", true)
	v.SetDefault("activation.schedule", "*/30 * * * *")
	v.SetDefault("activation.max_parallel", 4)

	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)

	v.SetDefault("pyroscope.enabled", false)
	v.SetDefault("pyroscope.server_address", "http://localhost:4040")
	v.SetDefault("pyroscope.application_name", "cars-service")
	v.SetDefault("pyroscope.basic_auth_user", "")
	v.SetDefault("pyroscope.basic_auth_pass", "")
	v.SetDefault("pyroscope.sample_rate", 100)
	v.SetDefault("pyroscope.disable_gc_runs", false)
	v.SetDefault("pyroscope.profile_types", []string{"cpu", "alloc_objects", "alloc_space", "inuse_objects", "inuse_space"})
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or tests without a config file
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Queue: QueueConfig{
			PubSub:        types.MemoryPubSub,
			Topic:         "cars",
			ConsumerGroup: "cars-consumer",
		},
		Activation: ActivationConfig{
			Enabled:     true,
			Schedule:    "*/30 * * * *",
			MaxParallel: 4,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

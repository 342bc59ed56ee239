package types

type RunMode string

const (
	// ModeLocal runs the API server, the queue consumer and the activation scheduler together
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server and the scheduler
	ModeAPI RunMode = "api"
	// ModeConsumer is the mode for running just the queue consumer
	ModeConsumer RunMode = "consumer"
	// ModeAWSLambdaAPI is the mode for running the API server in AWS Lambda
	ModeAWSLambdaAPI RunMode = "aws_lambda_api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

package config

const (
	EnvDataDir      = "PHOTOBOX_DATA_DIR"
	EnvPollInterval = "PHOTOBOX_POLL_INTERVAL"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvEventBrokers = "PHOTOBOX_EVENT_BROKERS"
	EnvEventTopic   = "PHOTOBOX_EVENT_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

package config

import "time"

const (
	DefaultDataDir      = "./data"
	DefaultPollInterval = 1 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultEventTopic = "photobox.bookings"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)

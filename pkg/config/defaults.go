package config

import "time"

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"

	DefaultStorageBackend = BackendMemory

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "smartgym"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr        = ""
	DefaultRedisDB          = 0
	DefaultRedisConnTimeout = 2 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"
	DefaultTimezone = "Local"

	DefaultNoteMaxLength = 250

	DefaultKafkaEnabled          = false
	DefaultHistoryTopic          = "smartgym.booking-history"
	DefaultHistoryDLQTopic       = "smartgym.booking-history.dlq"
	DefaultHistoryConsumerGroup  = "smartgym-history-projector"
	DefaultHistoryPublishTimeout = 2 * time.Second

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

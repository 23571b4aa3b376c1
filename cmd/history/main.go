package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"smartgym/internal/history"
	"smartgym/pkg/config"
	"smartgym/pkg/kafka"
	kafka_config "smartgym/pkg/kafka/config"
	kafka_middleware "smartgym/pkg/kafka/middleware"
)

const ServiceName = "history-projector"

func main() {
	cfg := config.Load(ServiceName)
	if !cfg.UsesMongo() {
		cfg.Log.Fatal("History projector requires the mongo storage backend", "storage_backend", cfg.StorageBackend)
	}
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	projector := history.NewProjector(history.NewMongoStore(cfg))
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.HistoryTopic,
		cfg.HistoryConsumerGroup,
		cfg.HistoryDLQTopic,
		projector.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create history consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting history projector",
		"topic", cfg.HistoryTopic,
		"group_id", cfg.HistoryConsumerGroup,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("History consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close history consumer", "error", err)
	}
	cfg.Log.Info("History projector stopped")
}

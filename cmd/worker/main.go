package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kindled/kindled/adapters/event"
	"github.com/kindled/kindled/internal/application/service"
	"github.com/kindled/kindled/internal/config"
	"github.com/kindled/kindled/pkg/logger"
)

// The worker drains match.events and delivers the queued notifications
// out-of-band. Delivery here is a structured log line; swapping in a mail
// provider only touches deliver.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicMatchEvents,
		GroupID:  "match-notifier-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicMatchEvents))

	ctx := context.Background()
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var n service.Notification
		if err := json.Unmarshal(msg.Value, &n); err != nil {
			appLogger.Warn("Skipping malformed notification payload", zap.Error(err))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		deliver(appLogger, n)
		commitMessage(consumer, msg, appLogger)
	}
}

func deliver(log logger.Logger, n service.Notification) {
	log.Info("Delivering notification",
		zap.String("recipient", n.Recipient),
		zap.String("subject", n.Subject),
		zap.String("body", n.Body),
	)
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}

package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/kindled/kindled/internal/application/service"
	"github.com/kindled/kindled/internal/config"
)

const TopicMatchEvents = "match.events"

// KafkaProducerClient publishes match notifications to the match.events
// topic. It satisfies service.Notifier; delivery happens out-of-band in the
// worker.
type KafkaProducerClient struct {
	MatchEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	matchWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicMatchEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{MatchEventsWriter: matchWriter}, nil
}

func (c *KafkaProducerClient) Notify(ctx context.Context, n service.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = c.MatchEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.Recipient),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.MatchEventsWriter != nil {
		c.MatchEventsWriter.Close()
	}
}

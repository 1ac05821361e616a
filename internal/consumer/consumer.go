package consumer

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"dashboard-service/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Consumer tails the admin activity topic and writes an audit line per
// event. It runs as its own process so the dashboard stays unaffected when
// no consumer is running.
type Consumer struct {
	brokers []string
	topic   string
}

// NewConsumer creates a new instance of Consumer.
func NewConsumer(brokers, topic string) *Consumer {
	return &Consumer{brokers: strings.Split(brokers, ","), topic: topic}
}

// Start reads activity events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.brokers,
		Topic:    c.topic,
		GroupID:  "dashboard-audit-group",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error().Msgf("Error reading message: %v", err)
			continue
		}
		c.processMessage(msg)
	}
}

// processMessage logs one audit line per activity event.
func (c *Consumer) processMessage(msg kafka.Message) {
	var event service.ActivityEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	logger.Info().
		Str("kind", event.Kind).
		Str("action", event.Action).
		Int("record_id", event.RecordID).
		Time("at", event.At).
		Msg("admin activity")
}

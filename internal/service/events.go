package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// ActivityEvent is the audit record published after every successful
// mutating admin action.
type ActivityEvent struct {
	Kind     string    `json:"kind"`
	Action   string    `json:"action"` // "created", "updated", "deleted", "checkout"
	RecordID int       `json:"record_id"`
	At       time.Time `json:"at"`
}

// EventPublisher writes activity events to Kafka. A nil writer disables
// publishing entirely. Publishing is best-effort: a broker problem is logged
// and never fails the admin action that triggered it.
type EventPublisher struct {
	writer *kafka.Writer
}

// NewEventPublisher creates a new instance of EventPublisher.
func NewEventPublisher(writer *kafka.Writer) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish emits one event, keyed "kind-action-id" for per-record ordering.
func (p *EventPublisher) Publish(ctx context.Context, kind, action string, recordID int) {
	if p == nil || p.writer == nil {
		return
	}

	event := ActivityEvent{Kind: kind, Action: action, RecordID: recordID, At: time.Now().UTC()}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling activity event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s-%s-%d", kind, action, recordID)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing activity event for %s %d", kind, recordID)
	}
}

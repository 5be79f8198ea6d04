package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgercore/internal/domain"
)

// Message is an encoded event ready for a transport.
type Message struct {
	ID         string
	Topic      string
	Key        string
	OccurredAt time.Time
	Body       []byte
}

// Publisher delivers messages to an external system.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type envelope struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Encode turns event into a Message addressed to prefix.topic.
func Encode(prefix string, event domain.Event) (Message, error) {
	topic := event.Topic
	if prefix != "" {
		topic = prefix + "." + topic
	}

	body, err := json.Marshal(envelope{
		ID:         event.ID,
		Topic:      topic,
		Key:        event.Key,
		OccurredAt: event.OccurredAt.UTC(),
		Payload:    event.Payload,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		ID:         event.ID,
		Topic:      topic,
		Key:        event.Key,
		OccurredAt: event.OccurredAt,
		Body:       body,
	}, nil
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the message envelope. The body carries amounts and account ids,
// so only its size is logged.
func (p *LogPublisher) Publish(_ context.Context, msg Message) error {
	p.logger.Info().
		Str("event_id", msg.ID).
		Str("topic", msg.Topic).
		Str("key", domain.MaskID(msg.Key)).
		Time("occurred_at", msg.OccurredAt).
		Int("payload_bytes", len(msg.Body)).
		Msg("EVENT PUBLISHED")
	return nil
}

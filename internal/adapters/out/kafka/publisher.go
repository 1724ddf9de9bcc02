// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"

	"bookdesk/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventType = "event-type"
	HeaderMessageID = "message-id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes synchronously so a returned nil means the broker has the
// messages. Messages are keyed by order id, keeping one order's events on one
// partition and therefore in order.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func newPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.CreatedAt,
			Headers: []kafka.Header{
				{Key: HeaderEventType, Value: []byte(m.EventType)},
				{Key: HeaderMessageID, Value: []byte(m.ID.String())},
			},
		})
	}

	return p.writer.WriteMessages(ctx, batch...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

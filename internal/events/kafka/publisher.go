package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	interfaces "github.com/sheikh-saqib/bank-client-ledger/internal/interfaces"
)

const DefaultTopic = "client_balance_changed"

// EventTypeHeader carries the event type so consumers can pick the payload shape.
const EventTypeHeader = "event_type"

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{}, // same client email, same partition
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType, key string, event any) error {
	msg, err := newMessage(eventType, key, event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newMessage(eventType, key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: EventTypeHeader, Value: []byte(eventType)},
		},
	}, nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)

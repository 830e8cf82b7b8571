// Package events publishes auth and catalog mutation events to Kafka.
// A nil *Producer is a safe no-op, so the service runs without brokers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vpetrenko/catalog_api/internal/logging"
)

type Producer struct {
	writer *kafka.Writer
}

type event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireOne,
		},
	}
}

// Publish never fails the caller: delivery problems are logged and dropped.
func (p *Producer) Publish(ctx context.Context, eventType, entityID string, payload any) {
	if p == nil {
		return
	}

	data, err := json.Marshal(event{
		Type:       eventType,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logging.FromContext(ctx).Error("event marshal failed", "type", eventType, "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	msg := kafka.Message{Key: []byte(entityID), Value: data}
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "type", eventType, "error", err)
	}
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

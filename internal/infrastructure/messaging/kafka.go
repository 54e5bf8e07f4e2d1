// Package messaging publishes order events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Message headers set on every record
const (
	HeaderEventType   = "event_type"
	HeaderEventID     = "event_id"
	HeaderContentType = "content_type"
)

// MessageWriter is the part of *kafka.Writer the publisher uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventPublisher writes order events keyed by order number so every
// event of one order lands on the same partition
type OrderEventPublisher struct {
	writer       MessageWriter
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewKafkaWriter builds the writer for cfg
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.OrdersTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           cfg.WriteTimeout,
	}
}

// NewOrderEventPublisher wraps writer
func NewOrderEventPublisher(writer MessageWriter, writeTimeout time.Duration, log *zap.Logger) *OrderEventPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &OrderEventPublisher{writer: writer, writeTimeout: writeTimeout, logger: log}
}

// EventTypes returns the order event types
func (p *OrderEventPublisher) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged}
}

// Handle writes one event
func (p *OrderEventPublisher) Handle(ctx context.Context, ev shared.DomainEvent) error {
	msg, err := toMessage(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", ev.EventType(), err)
	}
	p.logger.Debug("Order event published",
		zap.String("event_type", ev.EventType()),
		zap.String("key", string(msg.Key)))
	return nil
}

// Close flushes and closes the writer
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(ev shared.DomainEvent) (kafka.Message, error) {
	var key string
	switch e := ev.(type) {
	case *order.OrderPlacedEvent:
		key = e.OrderNumber
	case *order.OrderStatusChangedEvent:
		key = e.OrderNumber
	default:
		return kafka.Message{}, errors.New("kafka: unsupported event " + ev.EventType())
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: encode %s: %w", ev.EventType(), err)
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  ev.OccurredAt(),
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(ev.EventType())},
			{Key: HeaderEventID, Value: []byte(ev.EventID().String())},
			{Key: HeaderContentType, Value: []byte("application/json")},
		},
	}, nil
}

var _ shared.EventHandler = (*OrderEventPublisher)(nil)

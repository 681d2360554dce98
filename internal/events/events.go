package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Topics
const (
	TopicPaymentRecorded    = "payment.recorded"
	TopicSubmissionReceived = "submission.received"
	TopicRecordDeleted      = "record.deleted"
)

// Event is the JSON payload of every message
type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Entity     string                 `json:"entity"`
	EntityID   string                 `json:"entity_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time
func NewEvent(eventType, entity string, entityID interface{}, data map[string]interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Entity:     entity,
		EntityID:   fmt.Sprint(entityID),
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// EventPublisher publishes record lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close() error
}

// WatermillPublisher adapts any watermill publisher
type WatermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func NewWatermillPublisher(publisher message.Publisher, logger *slog.Logger) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher, logger: logger}
}

// NewKafkaPublisher connects to the given brokers
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (*WatermillPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	return NewWatermillPublisher(publisher, logger), nil
}

func (p *WatermillPublisher) Publish(ctx context.Context, topic string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("entity", event.Entity)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "Event published", "topic", topic, "type", event.Type, "entity_id", event.EntityID)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// NoopPublisher is used when no broker is configured
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, Event) error { return nil }
func (NoopPublisher) Close() error                                  { return nil }

// PublishedEvent is one call recorded by MockEventPublisher
type PublishedEvent struct {
	Topic string
	Event Event
}

// MockEventPublisher records events in memory
type MockEventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
	logger *slog.Logger
	err    error
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

// FailWith makes every following Publish return err
func (m *MockEventPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, PublishedEvent{Topic: topic, Event: event})
	return nil
}

func (m *MockEventPublisher) GetPublishedEvents() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockEventPublisher) Close() error {
	return nil
}

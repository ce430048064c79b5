package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

const schemaVersion = "1.0"

// Event types, prefixed with the configured topic prefix on the wire.
const (
	EventAccountRegistered = "account.registered"
	EventAccountVerified   = "account.verified"
	EventMessageReceived   = "message.received"
)

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	AccountID string           `json:"account_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, key, accountID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		metadata["trace_id"] = sc.TraceID().String()
	}

	topic := p.producer.TopicName(eventType)
	envelope := eventEnvelope{
		EventID:   id,
		EventType: topic,
		AccountID: accountID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *EventPublisher) PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error {
	payload := struct {
		AccountID    string    `json:"account_id"`
		Username     string    `json:"username"`
		Reregistered bool      `json:"reregistered"`
		RegisteredAt time.Time `json:"registered_at"`
		CodeExpiry   time.Time `json:"code_expiry"`
	}{
		AccountID:    event.AccountID,
		Username:     event.Username,
		Reregistered: event.Reregistered,
		RegisteredAt: event.RegisteredAt.UTC(),
		CodeExpiry:   event.CodeExpiry.UTC(),
	}

	return p.publish(ctx, event.EventID, EventAccountRegistered, event.AccountID, event.AccountID, event.RegisteredAt, payload)
}

func (p *EventPublisher) PublishAccountVerified(ctx context.Context, event domain.AccountVerifiedEvent) error {
	payload := struct {
		AccountID  string    `json:"account_id"`
		Username   string    `json:"username"`
		VerifiedAt time.Time `json:"verified_at"`
	}{
		AccountID:  event.AccountID,
		Username:   event.Username,
		VerifiedAt: event.VerifiedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, EventAccountVerified, event.AccountID, event.AccountID, event.VerifiedAt, payload)
}

// PublishMessageReceived carries only the message length, never its content.
func (p *EventPublisher) PublishMessageReceived(ctx context.Context, event domain.MessageReceivedEvent) error {
	payload := struct {
		Username   string    `json:"username"`
		MessageID  string    `json:"message_id"`
		Length     int       `json:"length"`
		ReceivedAt time.Time `json:"received_at"`
	}{
		Username:   event.Username,
		MessageID:  event.MessageID,
		Length:     event.Length,
		ReceivedAt: event.ReceivedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, EventMessageReceived, event.Username, "", event.ReceivedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)

package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, accountID string, at time.Time, fields ...zap.Field) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	base := []zap.Field{
		zap.String("event_type", eventType),
		zap.String("account_id", accountID),
		zap.Time("timestamp", at.UTC()),
	}
	p.logger.Info("stub event published", append(base, fields...)...)
}

func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	p.logEvent(EventAccountRegistered, event.AccountID, event.RegisteredAt,
		zap.String("username", event.Username),
		zap.Bool("reregistered", event.Reregistered),
		zap.Time("code_expiry", event.CodeExpiry),
	)
	return nil
}

func (p *StubPublisher) PublishAccountVerified(_ context.Context, event domain.AccountVerifiedEvent) error {
	p.logEvent(EventAccountVerified, event.AccountID, event.VerifiedAt,
		zap.String("username", event.Username),
	)
	return nil
}

func (p *StubPublisher) PublishMessageReceived(_ context.Context, event domain.MessageReceivedEvent) error {
	p.logEvent(EventMessageReceived, "", event.ReceivedAt,
		zap.String("username", event.Username),
		zap.String("message_id", event.MessageID),
		zap.Int("length", event.Length),
	)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)

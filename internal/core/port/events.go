package port

import (
	"context"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error
	PublishAccountVerified(ctx context.Context, event domain.AccountVerifiedEvent) error
	PublishMessageReceived(ctx context.Context, event domain.MessageReceivedEvent) error
}

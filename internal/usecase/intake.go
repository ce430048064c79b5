package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

// Rejection reasons reported to metrics.
const (
	RejectUnknownRecipient = "unknown_recipient"
	RejectNotAccepting     = "not_accepting"
)

// IntakeService accepts anonymous messages addressed to a username.
type IntakeService struct {
	accounts port.AccountRepository
	events   port.EventPublisher
	metrics  port.MetricsRecorder
	logger   *zap.Logger

	now func() time.Time
}

// NewIntakeService constructs an intake service.
func NewIntakeService(accounts port.AccountRepository, events port.EventPublisher, metrics port.MetricsRecorder, log *zap.Logger) *IntakeService {
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &IntakeService{
		accounts: accounts,
		events:   events,
		metrics:  metrics,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit appends content to the inbox of username. The gate is evaluated by the store in the
// same write, so a closed inbox is never mutated. The username is matched exactly.
func (s *IntakeService) Submit(ctx context.Context, username, content string) (domain.Message, error) {
	if username == "" {
		return domain.Message{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, fmt.Errorf("%w: message content is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return domain.Message{}, fmt.Errorf("%w: message must be no more than %d characters", ErrInvalidInput, MaxMessageLength)
	}

	message := domain.Message{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: s.now(),
	}

	if err := s.accounts.AppendMessage(ctx, username, message); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.metrics.MessageRejected(RejectUnknownRecipient)
			return domain.Message{}, ErrAccountNotFound
		case errors.Is(err, repository.ErrNotAccepting):
			s.metrics.MessageRejected(RejectNotAccepting)
			return domain.Message{}, ErrNotAcceptingMessages
		default:
			return domain.Message{}, fmt.Errorf("append message: %w", err)
		}
	}
	s.metrics.MessageReceived()

	if s.events != nil {
		event := domain.MessageReceivedEvent{
			EventID:    uuid.NewString(),
			Username:   username,
			MessageID:  message.ID,
			Length:     utf8.RuneCountInString(content),
			ReceivedAt: message.CreatedAt,
		}
		if err := s.events.PublishMessageReceived(ctx, event); err != nil {
			s.logger.Warn("publish message received event failed",
				zap.String("message_id", message.ID),
				zap.Error(err),
			)
		}
	}

	return message, nil
}

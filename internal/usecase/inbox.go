package usecase

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/google/uuid"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

// ListOrder selects how an inbox is returned.
type ListOrder int

const (
	// NewestFirst returns the most recently received message first.
	NewestFirst ListOrder = iota
	// OldestFirst returns messages in the order they were received.
	OldestFirst
)

// InboxService lets a signed-in owner manage their own messages.
type InboxService struct {
	accounts port.AccountRepository
	metrics  port.MetricsRecorder
}

// NewInboxService constructs an inbox service.
func NewInboxService(accounts port.AccountRepository, metrics port.MetricsRecorder) *InboxService {
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	return &InboxService{accounts: accounts, metrics: metrics}
}

// List returns the owner's messages in the requested order.
func (s *InboxService) List(ctx context.Context, owner domain.Principal, order ListOrder) ([]domain.Message, error) {
	if owner.IsZero() {
		return nil, ErrUnauthenticated
	}

	messages, err := s.accounts.ListMessages(ctx, owner.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if order == NewestFirst {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}
	return messages, nil
}

// Delete removes messageID from the owner's inbox. Ids that are absent, malformed or owned by
// someone else all report ErrMessageNotFound.
func (s *InboxService) Delete(ctx context.Context, owner domain.Principal, messageID string) error {
	if owner.IsZero() {
		return ErrUnauthenticated
	}
	if _, err := uuid.Parse(messageID); err != nil {
		return ErrMessageNotFound
	}

	if err := s.accounts.DeleteMessage(ctx, owner.AccountID, messageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("delete message: %w", err)
	}
	s.metrics.MessageDeleted()
	return nil
}

// AcceptingMessages reports the owner's acceptance gate.
func (s *InboxService) AcceptingMessages(ctx context.Context, owner domain.Principal) (bool, error) {
	if owner.IsZero() {
		return false, ErrUnauthenticated
	}

	account, err := s.accounts.GetByID(ctx, owner.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrAccountNotFound
		}
		return false, fmt.Errorf("lookup account: %w", err)
	}
	return account.IsAcceptingMessages, nil
}

// SetAcceptingMessages opens or closes the owner's acceptance gate.
func (s *InboxService) SetAcceptingMessages(ctx context.Context, owner domain.Principal, accepting bool) error {
	if owner.IsZero() {
		return ErrUnauthenticated
	}

	if err := s.accounts.SetAcceptingMessages(ctx, owner.AccountID, accepting); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("update acceptance: %w", err)
	}
	return nil
}

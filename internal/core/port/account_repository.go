package port

import (
	"context"
	"time"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

// AccountRepository exposes persistence behavior for accounts and their embedded messages.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// GetByIdentifier matches either the username or the email.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
	UpdatePendingRegistration(ctx context.Context, id string, update PendingRegistration) error
	MarkVerified(ctx context.Context, id string) error
	SetAcceptingMessages(ctx context.Context, id string, accepting bool) error

	// AppendMessage atomically adds a message to the account holding username, provided the
	// account accepts messages at the moment of the write.
	AppendMessage(ctx context.Context, username string, message domain.Message) error
	// ListMessages returns messages in insertion order.
	ListMessages(ctx context.Context, accountID string) ([]domain.Message, error)
	// DeleteMessage removes one message scoped to accountID; zero affected rows is ErrNotFound.
	DeleteMessage(ctx context.Context, accountID, messageID string) error
}

// PendingRegistration overwrites the credentials of an unverified account that signs up again.
type PendingRegistration struct {
	Username         string
	PasswordHash     string
	VerifyCode       string
	VerifyCodeExpiry time.Time
}

// Package sqlite implements the Account Store on SQLite through gorm, for local development.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

const appendMessageSQL = `INSERT INTO messages (id, account_id, content, created_at)
SELECT ?, id, ?, ? FROM accounts WHERE username = ? AND is_accepting_messages`

// AccountRepository implements port.AccountRepository on a gorm connection.
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository constructs a repository on db. Call Migrate first.
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account row.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	rec := toRecord(account)
	if err := r.db.WithContext(ctx).Omit("Messages").Create(&rec).Error; err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByUsername retrieves an account by its exact username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByEmail retrieves an account by its email address.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByIdentifier retrieves an account by username or email.
func (r *AccountRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	return r.first(ctx, "username = ? OR email = ?", identifier, identifier)
}

func (r *AccountRepository) first(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	var rec accountRecord
	if err := r.db.WithContext(ctx).Where(query, args...).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	return rec.toDomain(), nil
}

// UpdatePendingRegistration rewrites credentials of an account that is still unverified.
func (r *AccountRepository) UpdatePendingRegistration(ctx context.Context, id string, update port.PendingRegistration) error {
	res := r.db.WithContext(ctx).
		Model(&accountRecord{}).
		Where("id = ? AND is_verified = ?", id, false).
		Updates(map[string]any{
			"username":           update.Username,
			"password_hash":      update.PasswordHash,
			"verify_code":        update.VerifyCode,
			"verify_code_expiry": update.VerifyCodeExpiry,
		})
	if res.Error != nil {
		if mapped := mapUniqueViolation(res.Error); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update pending registration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkVerified flips the verification flag.
func (r *AccountRepository) MarkVerified(ctx context.Context, id string) error {
	return r.updateFlag(ctx, id, "is_verified", true)
}

// SetAcceptingMessages toggles the acceptance gate.
func (r *AccountRepository) SetAcceptingMessages(ctx context.Context, id string, accepting bool) error {
	return r.updateFlag(ctx, id, "is_accepting_messages", accepting)
}

func (r *AccountRepository) updateFlag(ctx context.Context, id, column string, value bool) error {
	res := r.db.WithContext(ctx).Model(&accountRecord{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", column, res.Error)
	}
	// sqlite reports matched rows, so an unchanged value still counts as found.
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendMessage inserts only when the gate is open; a miss is resolved with a follow-up read.
func (r *AccountRepository) AppendMessage(ctx context.Context, username string, message domain.Message) error {
	db := r.db.WithContext(ctx)
	res := db.Exec(appendMessageSQL, message.ID, message.Content, message.CreatedAt, username)
	if res.Error != nil {
		return fmt.Errorf("append message: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&accountRecord{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("lookup message target: %w", err)
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrNotAccepting
}

// ListMessages returns the inbox of accountID in insertion order.
func (r *AccountRepository) ListMessages(ctx context.Context, accountID string) ([]domain.Message, error) {
	var records []messageRecord
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("seq ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}

	messages := make([]domain.Message, 0, len(records))
	for _, rec := range records {
		messages = append(messages, domain.Message{ID: rec.ID, Content: rec.Content, CreatedAt: rec.CreatedAt.UTC()})
	}
	return messages, nil
}

// DeleteMessage removes messageID from accountID's inbox.
func (r *AccountRepository) DeleteMessage(ctx context.Context, accountID, messageID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND account_id = ?", messageID, accountID).Delete(&messageRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// mapUniqueViolation reads the column out of "UNIQUE constraint failed: accounts.<column>".
func mapUniqueViolation(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	switch {
	case strings.Contains(msg, "accounts.username"):
		return repository.ErrUsernameTaken
	case strings.Contains(msg, "accounts.email"):
		return repository.ErrEmailTaken
	default:
		return nil
	}
}

var _ port.AccountRepository = (*AccountRepository)(nil)

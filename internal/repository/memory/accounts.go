// Package memory holds a process-local Account Store used by tests and the demo driver.
package memory

import (
	"context"
	"sync"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

// AccountRepository keeps accounts in maps guarded by a single mutex.
type AccountRepository struct {
	mu         sync.RWMutex
	accounts   map[string]*domain.Account // id -> account
	byUsername map[string]string          // username -> id
	byEmail    map[string]string          // email -> id
}

// NewAccountRepository constructs an empty store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:   make(map[string]*domain.Account),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

// Create stores a copy of account, enforcing username and email uniqueness.
func (r *AccountRepository) Create(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[account.Username]; ok {
		return repository.ErrUsernameTaken
	}
	if _, ok := r.byEmail[account.Email]; ok {
		return repository.ErrEmailTaken
	}

	stored := account
	stored.Messages = cloneMessages(account.Messages)
	r.accounts[account.ID] = &stored
	r.byUsername[account.Username] = account.ID
	r.byEmail[account.Email] = account.ID
	return nil
}

// GetByID returns a copy of the account with id.
func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(id)
}

// GetByUsername returns a copy of the account holding the exact username.
func (r *AccountRepository) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(r.byUsername[username])
}

// GetByEmail returns a copy of the account registered with email.
func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(r.byEmail[email])
}

// GetByIdentifier resolves identifier as a username first, then as an email.
func (r *AccountRepository) GetByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byUsername[identifier]; ok {
		return r.snapshot(id)
	}
	return r.snapshot(r.byEmail[identifier])
}

// UpdatePendingRegistration rewrites an unverified account.
func (r *AccountRepository) UpdatePendingRegistration(_ context.Context, id string, update port.PendingRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok || account.IsVerified {
		return repository.ErrNotFound
	}
	if owner, taken := r.byUsername[update.Username]; taken && owner != id {
		return repository.ErrUsernameTaken
	}

	delete(r.byUsername, account.Username)
	account.Username = update.Username
	account.PasswordHash = update.PasswordHash
	account.VerifyCode = update.VerifyCode
	account.VerifyCodeExpiry = update.VerifyCodeExpiry
	r.byUsername[account.Username] = id
	return nil
}

// MarkVerified flips the verification flag.
func (r *AccountRepository) MarkVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.IsVerified = true
	return nil
}

// SetAcceptingMessages toggles the acceptance gate.
func (r *AccountRepository) SetAcceptingMessages(_ context.Context, id string, accepting bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.IsAcceptingMessages = accepting
	return nil
}

// AppendMessage checks the gate and appends under the same lock.
func (r *AccountRepository) AppendMessage(_ context.Context, username string, message domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[r.byUsername[username]]
	if !ok {
		return repository.ErrNotFound
	}
	if !account.IsAcceptingMessages {
		return repository.ErrNotAccepting
	}
	account.Messages = append(account.Messages, message)
	return nil
}

// ListMessages returns a copy of the inbox in insertion order.
func (r *AccountRepository) ListMessages(_ context.Context, accountID string) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneMessages(account.Messages), nil
}

// DeleteMessage removes messageID from accountID's inbox, keeping the order of the rest.
func (r *AccountRepository) DeleteMessage(_ context.Context, accountID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, msg := range account.Messages {
		if msg.ID == messageID {
			account.Messages = append(account.Messages[:i:i], account.Messages[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *AccountRepository) snapshot(id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *account
	clone.Messages = nil
	return &clone, nil
}

func cloneMessages(in []domain.Message) []domain.Message {
	out := make([]domain.Message, len(in))
	copy(out, in)
	return out
}

var _ port.AccountRepository = (*AccountRepository)(nil)

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

// RegistrationService handles new account onboarding.
type RegistrationService struct {
	accounts     port.AccountRepository
	hasher       port.PasswordHasher
	verification *VerificationService
	notifier     port.VerificationNotifier
	events       port.EventPublisher
	metrics      port.MetricsRecorder
	logger       *zap.Logger

	now func() time.Time
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(
	accounts port.AccountRepository,
	hasher port.PasswordHasher,
	verification *VerificationService,
	notifier port.VerificationNotifier,
	events port.EventPublisher,
	metrics port.MetricsRecorder,
	log *zap.Logger,
) *RegistrationService {
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationService{
		accounts:     accounts,
		hasher:       hasher,
		verification: verification,
		notifier:     notifier,
		events:       events,
		metrics:      metrics,
		logger:       log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// SignUpInput carries the sign-up form.
type SignUpInput struct {
	Username string
	Email    string
	Password string
}

// SignUpResult describes the account left waiting for verification.
type SignUpResult struct {
	Account      domain.Account
	Reregistered bool
	CodeExpiry   time.Time
}

// SignUp creates an unverified account or refreshes the credentials of an unverified one
// registered with the same email, then sends a verification code.
func (s *RegistrationService) SignUp(ctx context.Context, in SignUpInput) (SignUpResult, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if err := ValidateUsername(username); err != nil {
		return SignUpResult{}, err
	}
	if err := validateEmail(email); err != nil {
		return SignUpResult{}, err
	}
	if len(in.Password) < passwordMinLength {
		return SignUpResult{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, passwordMinLength)
	}

	holder, err := s.accounts.GetByUsername(ctx, username)
	switch {
	case err == nil && holder.IsVerified:
		return SignUpResult{}, ErrUsernameTaken
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return SignUpResult{}, fmt.Errorf("lookup username: %w", err)
	}

	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return SignUpResult{}, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil && existing.IsVerified {
		return SignUpResult{}, ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return SignUpResult{}, fmt.Errorf("hash password: %w", err)
	}
	issued, err := s.verification.IssueCode()
	if err != nil {
		return SignUpResult{}, err
	}

	var (
		account      domain.Account
		reregistered bool
	)
	if existing != nil {
		reregistered = true
		update := port.PendingRegistration{
			Username:         username,
			PasswordHash:     passwordHash,
			VerifyCode:       issued.Code,
			VerifyCodeExpiry: issued.ExpiresAt,
		}
		if err := s.accounts.UpdatePendingRegistration(ctx, existing.ID, update); err != nil {
			return SignUpResult{}, mapStoreConflict(err, "update pending registration")
		}
		account = *existing
		account.Username = username
		account.PasswordHash = passwordHash
		account.VerifyCode = issued.Code
		account.VerifyCodeExpiry = issued.ExpiresAt
	} else {
		account = domain.Account{
			ID:                  uuid.NewString(),
			Username:            username,
			Email:               email,
			PasswordHash:        passwordHash,
			VerifyCode:          issued.Code,
			VerifyCodeExpiry:    issued.ExpiresAt,
			IsAcceptingMessages: true,
			CreatedAt:           s.now(),
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			return SignUpResult{}, mapStoreConflict(err, "create account")
		}
	}

	notice := domain.VerificationNotice{
		Username:  account.Username,
		Email:     account.Email,
		Code:      issued.Code,
		ExpiresAt: issued.ExpiresAt,
	}
	if err := s.notifier.SendVerificationCode(ctx, notice); err != nil {
		return SignUpResult{}, fmt.Errorf("%w: %v", ErrVerificationDelivery, err)
	}

	s.metrics.AccountRegistered(reregistered)
	if s.events != nil {
		event := domain.AccountRegisteredEvent{
			EventID:      uuid.NewString(),
			AccountID:    account.ID,
			Username:     account.Username,
			Reregistered: reregistered,
			RegisteredAt: s.now(),
			CodeExpiry:   issued.ExpiresAt,
		}
		if err := s.events.PublishAccountRegistered(ctx, event); err != nil {
			s.logger.Warn("publish account registered event failed",
				zap.String("account_id", account.ID),
				zap.Error(err),
			)
		}
	}

	return SignUpResult{Account: account, Reregistered: reregistered, CodeExpiry: issued.ExpiresAt}, nil
}

// CheckUsernameUnique reports ErrUsernameTaken when a verified account holds username.
// Unverified holders do not block the name here, but SignUp with a different email still
// fails with ErrUsernameTaken until that holder is verified or re-registered.
func (s *RegistrationService) CheckUsernameUnique(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return err
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup username: %w", err)
	}
	if account.IsVerified {
		return ErrUsernameTaken
	}
	return nil
}

func mapStoreConflict(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		return ErrUsernameTaken
	case errors.Is(err, repository.ErrEmailTaken):
		return ErrEmailTaken
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

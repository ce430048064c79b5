package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
	"github.com/Amlan029/FeedFormly/internal/infra/security"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

const (
	defaultCodeLength = 6
	defaultCodeTTL    = 15 * time.Minute
)

// Verification attempt outcomes reported to metrics.
const (
	VerificationVerified = "verified"
	VerificationExpired  = "expired"
	VerificationMismatch = "mismatch"
	VerificationNotFound = "not_found"
)

// VerificationService issues and validates time-limited numeric codes.
type VerificationService struct {
	accounts port.AccountRepository
	events   port.EventPublisher
	metrics  port.MetricsRecorder
	logger   *zap.Logger
	cfg      config.VerificationSettings

	now          func() time.Time
	generateCode func(length int) (string, error)
}

// NewVerificationService constructs a verification service.
func NewVerificationService(
	accounts port.AccountRepository,
	events port.EventPublisher,
	metrics port.MetricsRecorder,
	cfg config.VerificationSettings,
	log *zap.Logger,
) *VerificationService {
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = defaultCodeLength
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = defaultCodeTTL
	}
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &VerificationService{
		accounts:     accounts,
		events:       events,
		metrics:      metrics,
		logger:       log,
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
		generateCode: security.GenerateNumericCode,
	}
}

// IssuedCode is a fresh code and the instant it stops being valid.
type IssuedCode struct {
	Code      string
	ExpiresAt time.Time
}

// IssueCode draws a new code. Callers persist it on the account, replacing any previous one.
func (s *VerificationService) IssueCode() (IssuedCode, error) {
	code, err := s.generateCode(s.cfg.CodeLength)
	if err != nil {
		return IssuedCode{}, fmt.Errorf("generate verification code: %w", err)
	}
	return IssuedCode{Code: code, ExpiresAt: s.now().Add(s.cfg.CodeTTL)}, nil
}

// Verify checks code against the account behind the URL-encoded username.
// Existence is checked first, then expiry, then the code itself. Both the username and
// the code must match exactly.
func (s *VerificationService) Verify(ctx context.Context, rawUsername, code string) (domain.Account, error) {
	username, err := url.PathUnescape(rawUsername)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: malformed username", ErrInvalidInput)
	}
	if username == "" || code == "" {
		return domain.Account{}, fmt.Errorf("%w: username and code are required", ErrInvalidInput)
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.VerificationAttempt(VerificationNotFound)
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	now := s.now()
	if account.CodeExpired(now) {
		s.metrics.VerificationAttempt(VerificationExpired)
		return domain.Account{}, ErrVerificationCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(account.VerifyCode)) != 1 {
		s.metrics.VerificationAttempt(VerificationMismatch)
		return domain.Account{}, ErrVerificationCodeMismatch
	}
	if account.IsVerified {
		return *account, nil
	}

	if err := s.accounts.MarkVerified(ctx, account.ID); err != nil {
		return domain.Account{}, fmt.Errorf("mark account verified: %w", err)
	}
	account.IsVerified = true
	s.metrics.VerificationAttempt(VerificationVerified)

	if s.events != nil {
		event := domain.AccountVerifiedEvent{
			EventID:    uuid.NewString(),
			AccountID:  account.ID,
			Username:   account.Username,
			VerifiedAt: now,
		}
		if err := s.events.PublishAccountVerified(ctx, event); err != nil {
			s.logger.Warn("publish account verified event failed",
				zap.String("account_id", account.ID),
				zap.Error(err),
			)
		}
	}

	return *account, nil
}

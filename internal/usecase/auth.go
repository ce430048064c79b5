package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

// AuthService signs owners in and resolves bearer tokens back to principals.
type AuthService struct {
	accounts port.AccountRepository
	hasher   port.PasswordHasher
	tokens   port.AccessTokenIssuer
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(accounts port.AccountRepository, hasher port.PasswordHasher, tokens port.AccessTokenIssuer) *AuthService {
	return &AuthService{accounts: accounts, hasher: hasher, tokens: tokens}
}

// SignInResult carries the authenticated principal and its bearer token.
type SignInResult struct {
	Principal   domain.Principal
	AccessToken string
	ExpiresAt   time.Time
}

// SignIn validates credentials for a username or email. The verification check runs after the
// password check so unverified accounts are only revealed to their owner.
func (s *AuthService) SignIn(ctx context.Context, identifier, password string) (SignInResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return SignInResult{}, fmt.Errorf("%w: identifier and password are required", ErrInvalidInput)
	}
	if strings.Contains(identifier, "@") {
		identifier = normalizeEmail(identifier)
	}

	account, err := s.accounts.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SignInResult{}, ErrInvalidCredentials
		}
		return SignInResult{}, fmt.Errorf("lookup account: %w", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return SignInResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return SignInResult{}, ErrInvalidCredentials
	}
	if !account.IsVerified {
		return SignInResult{}, ErrAccountNotVerified
	}

	principal := domain.Principal{AccountID: account.ID, Username: account.Username}
	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return SignInResult{}, fmt.Errorf("issue access token: %w", err)
	}

	return SignInResult{Principal: principal, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to its principal.
func (s *AuthService) Authenticate(raw string) (domain.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Principal{}, ErrUnauthenticated
	}
	principal, err := s.tokens.Parse(raw)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return principal, nil
}

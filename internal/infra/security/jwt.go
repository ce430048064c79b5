package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

const defaultAccessTokenTTL = 24 * time.Hour

// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
var ErrInvalidToken = errors.New("jwt: invalid token")

// AccessTokenClaims carries the signed-in owner's identity.
type AccessTokenClaims struct {
	Username string `json:"usr"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses HS256 access tokens for account owners.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("jwt: signing secret is required")
	}
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return nil, fmt.Errorf("jwt: issuer is required")
	}
	if ttl <= 0 {
		ttl = defaultAccessTokenTTL
	}

	return &TokenIssuer{secret: secret, issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for principal and its expiry.
func (t *TokenIssuer) Issue(principal domain.Principal) (string, time.Time, error) {
	if principal.IsZero() {
		return "", time.Time{}, fmt.Errorf("jwt: principal is required")
	}

	now := t.now().UTC()
	expiresAt := now.Add(t.ttl)
	claims := AccessTokenClaims{
		Username: principal.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.AccountID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse validates signature, issuer and lifetime and returns the embedded principal.
func (t *TokenIssuer) Parse(raw string) (domain.Principal, error) {
	var claims AccessTokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	principal := domain.Principal{AccountID: claims.Subject, Username: claims.Username}
	if principal.IsZero() {
		return domain.Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return principal, nil
}

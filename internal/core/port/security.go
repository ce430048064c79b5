package port

import (
	"time"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

// PasswordHasher derives and checks password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// AccessTokenIssuer signs and validates bearer tokens for signed-in owners.
type AccessTokenIssuer interface {
	Issue(principal domain.Principal) (string, time.Time, error)
	Parse(raw string) (domain.Principal, error)
}

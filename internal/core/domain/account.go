package domain

import "time"

// Account mirrors the persisted representation of a registered user and their inbox.
type Account struct {
	ID                  string
	Username            string
	Email               string
	PasswordHash        string
	VerifyCode          string
	VerifyCodeExpiry    time.Time
	IsVerified          bool
	IsAcceptingMessages bool
	CreatedAt           time.Time
	// Messages is only populated by stores that load the inbox explicitly.
	Messages []Message
}

// CodeExpired reports whether the pending verification code is no longer valid at now.
func (a Account) CodeExpired(now time.Time) bool {
	return a.VerifyCodeExpiry.IsZero() || !now.Before(a.VerifyCodeExpiry)
}

// Message is an anonymous note owned by exactly one account.
type Message struct {
	ID        string
	Content   string
	CreatedAt time.Time
}

// Principal identifies the signed-in owner of an account.
type Principal struct {
	AccountID string
	Username  string
}

// IsZero reports whether no owner is attached.
func (p Principal) IsZero() bool {
	return p.AccountID == ""
}

package domain

import "time"

// AccountRegisteredEvent represents the payload for feedformly.account.registered messages.
type AccountRegisteredEvent struct {
	EventID      string
	AccountID    string
	Username     string
	Reregistered bool
	RegisteredAt time.Time
	CodeExpiry   time.Time
}

// AccountVerifiedEvent represents the payload for feedformly.account.verified messages.
type AccountVerifiedEvent struct {
	EventID    string
	AccountID  string
	Username   string
	VerifiedAt time.Time
}

// MessageReceivedEvent represents the payload for feedformly.message.received messages.
// It is keyed by the recipient username and never carries anything about the sender.
type MessageReceivedEvent struct {
	EventID    string
	Username   string
	MessageID  string
	Length     int
	ReceivedAt time.Time
}

// VerificationNotice carries what is needed to deliver a verification code.
type VerificationNotice struct {
	Username  string
	Email     string
	Code      string
	ExpiresAt time.Time
}

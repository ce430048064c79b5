package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrUsernameTaken indicates the username unique constraint rejected the write.
	ErrUsernameTaken = errors.New("repository: username already exists")
	// ErrEmailTaken indicates the email unique constraint rejected the write.
	ErrEmailTaken = errors.New("repository: email already exists")
	// ErrNotAccepting indicates the target account has closed its acceptance gate.
	ErrNotAccepting = errors.New("repository: account is not accepting messages")
)

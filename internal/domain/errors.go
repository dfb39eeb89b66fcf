package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrDuplicateUsername = errors.New("username already taken")
	ErrAliasTaken        = errors.New("custom alias already taken")
	ErrNotFound          = errors.New("short URL not found")

	// ErrCodeSpaceExhausted means the generator kept colliding past the
	// retry bound. With 62^7 codes this indicates a capacity or
	// configuration problem, not bad luck.
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")

	ErrStoreUnavailable = errors.New("analytics store unavailable")
)

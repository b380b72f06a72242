// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication. Wrong password, unknown
	// account and corrupt credential records all map here.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrEmailTaken indicates the email is registered to another account.
	ErrEmailTaken = errors.New("email already in use")

	// ErrRegistrationDisabled indicates the realm does not accept new accounts.
	ErrRegistrationDisabled = errors.New("registration disabled")

	// ErrInvalidArgument indicates input rejected by account policy.
	ErrInvalidArgument = errors.New("invalid argument")
)

package auth

import "errors"

var (
	// ErrUnauthenticated means no valid credentials were presented. It wraps
	// the cause from the jwt package (missing, expired, mismatched, ...).
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	// ErrUserLookup means the token was valid but loading its user failed.
	ErrUserLookup = errors.New("auth: user lookup failed")

	ErrUserNotVerified = errors.New("auth: email not verified")
	ErrInvalidLogin    = errors.New("auth: invalid email or password")
)

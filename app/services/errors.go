package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP status codes with errors.Is; anything not listed here is treated as
// an internal error.
var (
	// ErrDuplicateUsername: registration with a username that already exists.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so a login response never reveals which one was wrong.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUnauthenticated: missing, malformed, tampered or expired token, or
	// a token whose subject no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound: unknown sweet id.
	ErrNotFound = errors.New("sweet not found")

	// ErrOutOfStock: purchase attempted with zero quantity remaining.
	ErrOutOfStock = errors.New("out of stock")

	// ErrInvalidInput: negative price or quantity, rejected before persistence.
	ErrInvalidInput = errors.New("price and quantity must be non-negative")
)

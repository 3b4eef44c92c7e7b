package service

import "errors"

// Authentication errors carry the exact messages the API returns to
// clients, so handlers can serialize them directly.
var (
	ErrInvalidUsername = errors.New("Invalid username.")
	ErrInvalidPassword = errors.New("Invalid Password. Please try again.")
	ErrUserNotVerified = errors.New("User Not Verified. Please verify your email.")

	ErrUsernameTaken = errors.New("Username already exists")
	ErrEmailTaken    = errors.New("Email already exists")

	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenIsInvalid covers every decode failure alike: expired,
	// tampered, unknown principal, revoked. Callers must not be able to
	// distinguish them.
	ErrTokenIsInvalid = errors.New("token is expired or invalid")

	ErrAccessTokenRequired  = errors.New("access token required")
	ErrRefreshTokenRequired = errors.New("refresh token required")
)

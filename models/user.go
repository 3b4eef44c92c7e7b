package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique public identifier used during authentication.
	Username string `json:"username"`

	// Email is the unique address the account was registered with.
	// Verification mail is delivered here.
	Email string `json:"email"`

	// Password carries the plain-text password only on inbound
	// signup/update requests. It is never persisted and never serialized
	// back to clients.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt digest of the user's password.
	// It is used only for credential verification.
	PasswordHash string `json:"-"`

	// SecretKey is the per-user signing secret for session tokens.
	// Generated once at signup. Regenerating it invalidates every token
	// previously issued to this user. Must receive the same access-control
	// discipline as PasswordHash.
	SecretKey string `json:"-"`

	// IsVerified reports whether the user has confirmed their email address.
	// Unverified users cannot log in.
	IsVerified bool `json:"is_verified"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last profile mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing email token secret).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrBlocklistTTLTooShort indicates a blocklist TTL shorter than the
	// refresh-token lifetime, which would let a revoked token outlive its
	// blocklist entry.
	ErrBlocklistTTLTooShort = errors.New("blocklist TTL is shorter than refresh token lifetime")
)

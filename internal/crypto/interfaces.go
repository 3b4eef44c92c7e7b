package crypto

// PasswordHasher owns one-way credential hashing. It knows nothing about
// users, storage or transport; its only job is to turn plain-text passwords
// into salted digests and to verify candidates against stored digests.
type PasswordHasher interface {
	// HashPassword produces a self-salted one-way digest of password.
	// The salt is regenerated on every call, so hashing the same password
	// twice yields two different digests.
	HashPassword(password string) (string, error)

	// CheckPassword reports whether digest was produced from password.
	// It returns false on any mismatch, including a structurally malformed
	// digest; it never panics or surfaces an error for bad input.
	CheckPassword(password, digest string) bool
}

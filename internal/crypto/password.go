package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordHasher is the private bcrypt implementation of [PasswordHasher].
type passwordHasher struct {
	// cost is the bcrypt work factor. Stored in the struct so it can be
	// raised per deployment target without touching call sites.
	cost int
}

// NewPasswordHasher constructs a [PasswordHasher] using bcrypt with the
// library's default cost (10). bcrypt embeds a freshly generated salt in
// every digest, so no salt management is needed by callers.
func NewPasswordHasher() PasswordHasher {
	return &passwordHasher{cost: bcrypt.DefaultCost}
}

// HashPassword implements [PasswordHasher]. Returns an error only if bcrypt
// itself fails (e.g. the password exceeds bcrypt's 72-byte input limit).
func (p *passwordHasher) HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// CheckPassword implements [PasswordHasher]. A malformed digest compares as
// a mismatch rather than an error: a caller can only ever learn "match" or
// "no match".
func (p *passwordHasher) CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/subbuk987/Fundoo/models"
)

// DefaultSessionTokenLifetime is applied when a caller passes a zero
// lifetime to GenerateSessionToken.
const DefaultSessionTokenLifetime = 15 * time.Minute

// GenerateSessionToken creates a signed HMAC-SHA256 session token for the
// given user, signed with that user's own secret key.
//
// The token embeds:
//   - a freshly generated globally-unique token id (jti) used as the
//     revocation key;
//   - the user id and username as principal claims;
//   - an absolute expiry of now + lifetime (DefaultSessionTokenLifetime
//     when lifetime is zero);
//   - the refresh flag separating refresh tokens from access tokens.
//
// Returns an error if secretKey is empty or signing fails.
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken(42, "alice", user.SecretKey, time.Hour, false)
func GenerateSessionToken(userID int64, username, secretKey string, lifetime time.Duration, refresh bool) (models.Token, error) {
	if secretKey == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}
	if lifetime <= 0 {
		lifetime = DefaultSessionTokenLifetime
	}

	now := time.Now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		Username: username,
		Refresh:  refresh,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.Token{Token: token, SessionClaims: claims, SignedString: tokenString}, nil
}

// ParseSessionToken validates the given token string against secretKey and
// extracts its claims.
//
// Validation includes:
//   - Signature verification (HS256 only) using the provided secret
//   - Expiration (exp) claim check
//
// Because every user signs with their own secret, callers must first learn
// whose secret to check via [ParseUnverifiedUserID] before calling this.
//
// Returns the decoded token model, or an error on any validation failure
// (expired, malformed, signature mismatch).
func ParseSessionToken(tokenString, secretKey string) (models.Token, error) {
	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	parsed.Token = token
	parsed.SignedString = tokenString
	return *parsed, nil
}

// ParseUnverifiedUserID decodes the token WITHOUT verifying the signature
// and returns the embedded principal id.
//
// This is phase one of the two-phase decode: tokens are signed with
// per-user secrets, so the verifying party must first learn whose secret to
// verify against. The result is untrusted until [ParseSessionToken]
// succeeds with that user's current secret.
func ParseUnverifiedUserID(tokenString string) (int64, error) {
	parsed := &models.Token{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, parsed)
	if err != nil {
		return 0, err
	}

	if parsed.UserID == 0 {
		return 0, errors.New("token carries no user id")
	}

	return parsed.UserID, nil
}

// emailClaims is the payload of email verification tokens. Unlike session
// tokens these are signed with a single server-wide secret and carry only
// the address being verified.
type emailClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username"`
}

// GenerateEmailToken creates a short-lived signed token for the email
// verification link. It is deliberately not a session token: it grants no
// API access and is verified against the server-wide email secret.
func GenerateEmailToken(username, email, secretKey string, lifetime time.Duration) (string, error) {
	if email == "" || secretKey == "" {
		return "", errors.New("invalid params for generating email token")
	}

	now := time.Now()
	claims := emailClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:    email,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing email token: %w", err)
	}

	return tokenString, nil
}

// ParseEmailToken validates an email verification token and returns the
// embedded address. Any failure (expired link, tampered payload) yields an
// error; callers treat all failures alike.
func ParseEmailToken(tokenString, secretKey string) (string, error) {
	claims := &emailClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("error occurred validating email token: %w", err)
	}

	if claims.Email == "" {
		return "", errors.New("email token carries no address")
	}

	return claims.Email, nil
}

// ParseBearerToken extracts the token part from an Authorization header of
// the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

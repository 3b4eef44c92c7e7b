package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded in every session token.
//
// It extends [jwt.RegisteredClaims] (exp, iat, jti) with the identity of the
// principal the token was issued to and a flag separating the two token
// variants. Tokens are always signed with the issuing user's own SecretKey,
// never a global secret, so the verifying side must look the user up by
// UserID before it can check the signature.
type SessionClaims struct {
	jwt.RegisteredClaims

	// UserID is the internal identifier of the user the token belongs to.
	UserID int64 `json:"user_id"`

	// Username is the unique login name of the user, embedded so that
	// downstream code can resolve cache partitions without a DB round-trip.
	Username string `json:"username"`

	// Refresh distinguishes refresh tokens from access tokens.
	// Operations requiring one variant must reject the other.
	Refresh bool `json:"refresh"`
}

// Token wraps a parsed or freshly issued session token.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SessionClaims provides access to the embedded principal identity,
	// the unique token id (jti) and the refresh flag.
	SessionClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// JTI returns the unique token identifier used as the revocation key.
func (t *Token) JTI() string {
	return t.SessionClaims.ID
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair bundles the access and refresh tokens minted together at login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

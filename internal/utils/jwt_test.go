package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken_RoundTrip(t *testing.T) {
	issued, err := GenerateSessionToken(42, "alice", "alice-secret", time.Hour, false)
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	parsed, err := ParseSessionToken(issued.SignedString, "alice-secret")
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, "alice", parsed.Username)
	assert.False(t, parsed.Refresh)
	assert.Equal(t, issued.JTI(), parsed.JTI())
	assert.NotEmpty(t, parsed.JTI())
}

func TestGenerateSessionToken_EmptySecret(t *testing.T) {
	_, err := GenerateSessionToken(1, "alice", "", time.Hour, false)
	assert.Error(t, err)
}

func TestGenerateSessionToken_DefaultLifetime(t *testing.T) {
	issued, err := GenerateSessionToken(1, "alice", "secret", 0, false)
	require.NoError(t, err)

	exp, err := issued.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultSessionTokenLifetime), exp.Time, 5*time.Second)
}

func TestGenerateSessionToken_RefreshFlagPreserved(t *testing.T) {
	issued, err := GenerateSessionToken(7, "bob", "bob-secret", time.Hour, true)
	require.NoError(t, err)

	parsed, err := ParseSessionToken(issued.SignedString, "bob-secret")
	require.NoError(t, err)
	assert.True(t, parsed.Refresh)
}

func TestGenerateSessionToken_UniqueJTIPerCall(t *testing.T) {
	first, err := GenerateSessionToken(1, "alice", "secret", time.Hour, false)
	require.NoError(t, err)
	second, err := GenerateSessionToken(1, "alice", "secret", time.Hour, false)
	require.NoError(t, err)

	assert.NotEqual(t, first.JTI(), second.JTI())
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	issued, err := GenerateSessionToken(42, "alice", "alice-secret", time.Hour, false)
	require.NoError(t, err)

	_, err = ParseSessionToken(issued.SignedString, "bob-secret")
	assert.Error(t, err)
}

func TestParseSessionToken_TamperedPayload(t *testing.T) {
	issued, err := GenerateSessionToken(42, "alice", "alice-secret", time.Hour, false)
	require.NoError(t, err)

	tampered := []byte(issued.SignedString)
	// flip one character of the signed artifact
	if tampered[10] == 'a' {
		tampered[10] = 'b'
	} else {
		tampered[10] = 'a'
	}

	_, err = ParseSessionToken(string(tampered), "alice-secret")
	assert.Error(t, err)
}

func TestParseSessionToken_Expired(t *testing.T) {
	issued, err := GenerateSessionToken(42, "alice", "alice-secret", -time.Minute, false)
	require.NoError(t, err)

	_, err = ParseSessionToken(issued.SignedString, "alice-secret")
	assert.Error(t, err)
}

func TestParseUnverifiedUserID(t *testing.T) {
	issued, err := GenerateSessionToken(42, "alice", "alice-secret", time.Hour, false)
	require.NoError(t, err)

	// no secret needed: phase one of the two-phase decode
	userID, err := ParseUnverifiedUserID(issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseUnverifiedUserID_Garbage(t *testing.T) {
	_, err := ParseUnverifiedUserID("not.a.token")
	assert.Error(t, err)
}

func TestEmailToken_RoundTrip(t *testing.T) {
	tokenString, err := GenerateEmailToken("alice", "a@x.com", "email-secret", time.Hour)
	require.NoError(t, err)

	email, err := ParseEmailToken(tokenString, "email-secret")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestEmailToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateEmailToken("alice", "a@x.com", "email-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseEmailToken(tokenString, "other-secret")
	assert.Error(t, err)
}

func TestEmailToken_Expired(t *testing.T) {
	tokenString, err := GenerateEmailToken("alice", "a@x.com", "email-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseEmailToken(tokenString, "email-secret")
	assert.Error(t, err)
}

func TestEmailToken_NotASessionToken(t *testing.T) {
	tokenString, err := GenerateEmailToken("alice", "a@x.com", "email-secret", time.Hour)
	require.NoError(t, err)

	// an email token must never pass for a session token
	_, err = ParseUnverifiedUserID(tokenString)
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ParseBearerToken("abc.def.ghi")
	assert.Error(t, err)

	_, err = ParseBearerToken("Bearer ")
	assert.Error(t, err)
}

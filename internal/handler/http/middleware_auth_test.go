package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subbuk987/Fundoo/internal/service"
	"github.com/subbuk987/Fundoo/internal/utils"
	"github.com/subbuk987/Fundoo/models"
)

// okHandler records whether it was reached and what principal it saw.
type okHandler struct {
	called bool
	user   models.User
	token  models.Token
}

func (o *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o.called = true
	o.user, _ = utils.GetUserFromContext(r.Context())
	o.token, _ = utils.GetTokenFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

// TestAuthMiddleware_Success verifies that a valid bearer token passes and
// the principal and token land in the request context.
func TestAuthMiddleware_Success(t *testing.T) {
	token := models.Token{SignedString: "valid.jwt"}
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, tokenString string, wantRefresh bool) (models.User, models.Token, error) {
			assert.Equal(t, "valid.jwt", tokenString)
			assert.False(t, wantRefresh, "guarded routes require the access variant")
			return alice, token, nil
		},
	}

	h := newTestHandler(t, auth, nil, nil)
	next := &okHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	assert.Equal(t, alice.ID, next.user.ID)
	assert.Equal(t, "valid.jwt", next.token.SignedString)
}

// TestAuthMiddleware_MissingHeader verifies 401 on an absent header.
func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil, nil)
	next := &okHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

// TestAuthMiddleware_MalformedHeader verifies 401 on a header that cannot
// be parsed as a bearer token.
func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil, nil)

	for _, header := range []string{"Bearer", "Bearer "} {
		next := &okHandler{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		h.auth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, next.called)
	}
}

// TestAuthMiddleware_InvalidToken verifies 401 when validation fails.
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _ string, _ bool) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, service.ErrTokenIsInvalid
		},
	}

	h := newTestHandler(t, auth, nil, nil)
	next := &okHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer expired.jwt")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

// TestAuthMiddleware_RefreshTokenRejected verifies 403 when a refresh
// token is presented on a guarded route.
func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _ string, _ bool) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, service.ErrAccessTokenRequired
		},
	}

	h := newTestHandler(t, auth, nil, nil)
	next := &okHandler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer refresh.jwt")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, next.called)
}

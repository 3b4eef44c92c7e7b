package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/utils"
	"github.com/subbuk987/Fundoo/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, and validates it via [service.AuthService.Authenticate] — the
// two-phase decode against the principal's personal secret, the blocklist
// check, and the access/refresh variant check. On success the principal
// and the verified token are stored in the request context under
// [utils.UserCtxKey] and [utils.TokenCtxKey] before delegating to the next
// handler.
//
// The middleware rejects requests in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//   - The token fails validation (401) or is a refresh token where an
//     access token is required (403).
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSON(w, models.ErrorResponse{Detail: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteJSON(w, models.ErrorResponse{Detail: err.Error()}, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, token, err := h.services.AuthService.Authenticate(ctx, tokenString, false)
		if err != nil {
			writeError(w, r, err)
			return
		}

		// Store the principal and the verified token in the context so that
		// downstream handlers can retrieve them without re-parsing.
		ctx = context.WithValue(ctx, utils.UserCtxKey, user)
		ctx = context.WithValue(ctx, utils.TokenCtxKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

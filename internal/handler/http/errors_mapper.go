package http

import (
	"errors"
	"net/http"

	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/service"
	"github.com/subbuk987/Fundoo/internal/store"
	"github.com/subbuk987/Fundoo/internal/utils"
	"github.com/subbuk987/Fundoo/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	service.ErrInvalidUsername: http.StatusUnauthorized,
	service.ErrInvalidPassword: http.StatusUnauthorized,
	service.ErrUserNotVerified: http.StatusUnauthorized,
	service.ErrTokenIsInvalid:  http.StatusUnauthorized,

	service.ErrAccessTokenRequired:  http.StatusForbidden,
	service.ErrRefreshTokenRequired: http.StatusForbidden,

	service.ErrUsernameTaken: http.StatusConflict,
	service.ErrEmailTaken:    http.StatusConflict,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:      http.StatusNotFound,
	store.ErrNoteNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// mapError resolves err to an HTTP status and a client-safe detail message.
// Unmatched errors collapse to 500 with a generic detail so that internals
// never leak to clients.
func mapError(err error) (int, string) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			if status == http.StatusInternalServerError {
				return status, http.StatusText(status)
			}
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError logs err and writes the mapped JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, detail := mapError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("unexpected error")
	} else {
		log.Err(err).Send()
	}

	utils.WriteJSON(w, models.ErrorResponse{Detail: detail}, status)
}

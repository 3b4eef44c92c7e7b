package http

import (
	"encoding/json"
	"net/http"

	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/utils"
	"github.com/subbuk987/Fundoo/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	profile, err := h.services.UserService.GetProfile(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "Profile fetched",
		Payload: profile,
	}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	var input models.User
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Detail: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserService.UpdateProfile(ctx, user, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", updated.ID).Msg("profile updated")

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "Profile updated",
		Payload: updated,
	}, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	if err := h.services.UserService.DeleteAccount(ctx, user); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", user.ID).Msg("account deleted")

	utils.WriteJSON(w, models.SuccessResponse{Message: "Account deleted"}, http.StatusOK)
}

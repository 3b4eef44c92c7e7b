package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/utils"
	"github.com/subbuk987/Fundoo/models"
)

// credentials is the request body of the login endpoint.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// refreshRequest is the request body of the refresh endpoint.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Detail: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	registered, err := h.services.AuthService.Signup(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", registered.ID).Str("username", registered.Username).Msg("user registered")

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "User registered successfully. Please check your email to verify the account.",
		Payload: registered,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Detail: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	loggedIn, pair, err := h.services.AuthService.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", loggedIn.ID).Str("username", loggedIn.Username).Msg("user logged in")

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "Login successful",
		Payload: pair,
	}, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Detail: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	pair, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "Token refreshed",
		Payload: pair,
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.Logout(ctx, user, token); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", user.Username).Msg("user logged out")

	utils.WriteJSON(w, models.SuccessResponse{Message: "Logged out successfully"}, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tokenString := chi.URLParam(r, "token")

	if err := h.services.AuthService.VerifyEmail(ctx, tokenString); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Msg("email verified")

	utils.WriteJSON(w, models.SuccessResponse{Message: "Email verified successfully"}, http.StatusOK)
}

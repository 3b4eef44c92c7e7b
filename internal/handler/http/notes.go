package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/utils"
	"github.com/subbuk987/Fundoo/models"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	var input models.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Detail: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	created, err := h.services.NoteService.CreateNote(ctx, user, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("note_id", created.ID.String()).Msg("note created")

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "Note created",
		Payload: created,
	}, http.StatusCreated)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	notes, err := h.services.NoteService.GetNotes(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "Notes fetched",
		Payload: notes,
	}, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("invalid note id")
		utils.WriteJSON(w, models.ErrorResponse{Detail: "invalid note id"}, http.StatusBadRequest)
		return
	}

	var input models.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Detail: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.NoteService.UpdateNote(ctx, user, noteID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("note_id", noteID.String()).Msg("note updated")

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "Note updated",
		Payload: updated,
	}, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("invalid note id")
		utils.WriteJSON(w, models.ErrorResponse{Detail: "invalid note id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.DeleteNote(ctx, user, noteID); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("note_id", noteID.String()).Msg("note deleted")

	utils.WriteJSON(w, models.SuccessResponse{Message: "Note deleted"}, http.StatusOK)
}

func (h *Handler) listLabels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	labels, err := h.services.NoteService.GetLabels(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{
		Message: "Labels fetched",
		Payload: labels,
	}, http.StatusOK)
}

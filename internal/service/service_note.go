package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/subbuk987/Fundoo/internal/cache"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/store"
	"github.com/subbuk987/Fundoo/models"
)

// noteService is the concrete implementation of NoteService. Reads go
// through the view cache and fall back to the relational store; every
// mutation repopulates the owner's notes and labels partitions so that the
// next read is warm.
//
// Labels are global: a mutation refreshes only the acting user's labels
// partition, so other users see new labels once their own partition cycles.
type noteService struct {
	noteRepository store.NoteRepository
	views          *cache.ViewCache
	logger         *logger.Logger
}

// NewNoteService constructs a NoteService over the given repository and
// view cache.
func NewNoteService(noteRepository store.NoteRepository, views *cache.ViewCache, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		views:          views,
		logger:         logger,
	}
}

// CreateNote persists a new note for the user and refreshes their cached
// views.
//
// Returns ErrInvalidDataProvided when the title is empty.
func (n *noteService) CreateNote(ctx context.Context, user models.User, input models.NoteInput) (models.Note, error) {
	log := logger.FromContext(ctx)

	if input.Title == "" {
		log.Error().Str("username", user.Username).Msg("invalid note data provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	note := models.Note{
		Title:   input.Title,
		Content: input.Content,
		UserID:  user.ID,
	}

	created, err := n.noteRepository.CreateNote(ctx, note, input.Labels)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	n.repopulateViews(ctx, user)

	return created, nil
}

// GetNotes returns the user's notes, newest first. A warm cache answers
// directly; a miss falls back to the relational store and repopulates the
// partition best-effort.
func (n *noteService) GetNotes(ctx context.Context, user models.User) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	cached, err := n.views.GetNotes(ctx, user.Username)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Err(err).Str("username", user.Username).Msg("error reading notes cache")
	}

	notes, err := n.noteRepository.ListUserNotes(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("notes listing ended with error")
		return nil, fmt.Errorf("notes listing ended with error: %w", err)
	}

	if err := n.views.CacheNotes(ctx, user.Username, notes); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error repopulating notes cache")
	}

	return notes, nil
}

// UpdateNote rewrites an owned note, replacing its label set, and
// refreshes the user's cached views.
//
// Returns store.ErrNoteNotFound when the note does not exist or belongs to
// someone else.
func (n *noteService) UpdateNote(ctx context.Context, user models.User, id uuid.UUID, input models.NoteInput) (models.Note, error) {
	log := logger.FromContext(ctx)

	if input.Title == "" {
		log.Error().Str("username", user.Username).Msg("invalid note data provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	note := models.Note{
		ID:      id,
		Title:   input.Title,
		Content: input.Content,
		UserID:  user.ID,
	}

	updated, err := n.noteRepository.UpdateNote(ctx, note, input.Labels)
	if err != nil {
		log.Err(err).Str("username", user.Username).Str("note_id", id.String()).Msg("note update ended with error")
		return models.Note{}, err
	}

	n.repopulateViews(ctx, user)

	return updated, nil
}

// DeleteNote removes an owned note and refreshes the user's cached views.
func (n *noteService) DeleteNote(ctx context.Context, user models.User, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	if err := n.noteRepository.DeleteNote(ctx, id, user.ID); err != nil {
		log.Err(err).Str("username", user.Username).Str("note_id", id.String()).Msg("note deletion ended with error")
		return err
	}

	n.repopulateViews(ctx, user)

	return nil
}

// GetLabels returns the global label list. The cached snapshot is per
// user; a miss falls back to the relational store and repopulates.
func (n *noteService) GetLabels(ctx context.Context, user models.User) ([]models.Label, error) {
	log := logger.FromContext(ctx)

	cached, err := n.views.GetLabels(ctx, user.Username)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Err(err).Str("username", user.Username).Msg("error reading labels cache")
	}

	labels, err := n.noteRepository.ListAllLabels(ctx)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("labels listing ended with error")
		return nil, fmt.Errorf("labels listing ended with error: %w", err)
	}

	if err := n.views.CacheLabels(ctx, user.Username, labels); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error repopulating labels cache")
	}

	return labels, nil
}

// repopulateViews reloads the owner's notes and labels partitions after a
// mutation. Best-effort: a failure leaves the partitions cold, and the
// next read falls back to the relational store.
func (n *noteService) repopulateViews(ctx context.Context, user models.User) {
	log := logger.FromContext(ctx)

	notes, err := n.noteRepository.ListUserNotes(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("error loading notes for cache repopulation")
	} else if err := n.views.CacheNotes(ctx, user.Username, notes); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error repopulating notes cache")
	}

	labels, err := n.noteRepository.ListAllLabels(ctx)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("error loading labels for cache repopulation")
	} else if err := n.views.CacheLabels(ctx, user.Username, labels); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error repopulating labels cache")
	}
}

// Package store implements the PostgreSQL persistence layer: user accounts
// (including the per-user signing secret) and note/label CRUD.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/subbuk987/Fundoo/models"
)

// UserRepository is the data-access layer for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. A username or email collision yields
	// ErrUserAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the account with the given username, or
	// ErrUserNotFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByEmail returns the account registered with the given email,
	// or ErrUserNotFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the account with the given id, or ErrUserNotFound.
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	// UpdateUser rewrites the mutable profile fields (username, email,
	// password hash) of the account identified by user.ID.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// MarkUserVerified flips the is_verified flag. Idempotent.
	MarkUserVerified(ctx context.Context, id int64) error

	// DeleteUser removes the account. Owned notes are removed by the
	// database cascade.
	DeleteUser(ctx context.Context, id int64) error
}

// NoteRepository is the data-access layer for notes and their labels.
// Labels are global and deduplicated by name across all users.
type NoteRepository interface {
	// CreateNote persists a new note for note.UserID, resolving each label
	// name to an existing label or creating it.
	CreateNote(ctx context.Context, note models.Note, labels []string) (models.Note, error)

	// FindNoteByID returns the note with the given id if it is owned by
	// userID, or ErrNoteNotFound.
	FindNoteByID(ctx context.Context, id uuid.UUID, userID int64) (models.Note, error)

	// ListUserNotes returns all notes owned by userID with labels attached.
	ListUserNotes(ctx context.Context, userID int64) ([]models.Note, error)

	// UpdateNote rewrites title, content and the label set of the note
	// identified by note.ID, which must be owned by note.UserID.
	UpdateNote(ctx context.Context, note models.Note, labels []string) (models.Note, error)

	// DeleteNote removes the note if owned by userID, or ErrNoteNotFound.
	DeleteNote(ctx context.Context, id uuid.UUID, userID int64) error

	// ListAllLabels returns every label in the system, ordered by name.
	ListAllLabels(ctx context.Context) ([]models.Label, error)

	// ListExpiringNotes returns projections of all notes whose expiry lies
	// before the given deadline, joined with their owners' addresses.
	ListExpiringNotes(ctx context.Context, before time.Time) ([]models.ExpiringNote, error)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a single note owned by exactly one user. Ownership is fixed at
// creation. A note carries zero or more labels through a many-to-many
// association.
type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Expiry is the instant after which the note is considered stale.
	// The background sweep mails the owner shortly before it is reached.
	Expiry time.Time `json:"expiry"`

	// UserID is the owning user. Deleting the user cascades to their notes.
	UserID int64 `json:"-"`

	Labels []Label `json:"labels"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// Label is a global tag, deduplicated by name across all users.
type Label struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TableName returns the name of the database table
// associated with the Label model.
func (l Label) TableName() string {
	return "labels"
}

// NoteInput is the inbound payload for note creation and update.
// Labels are plain names; unknown names are created, known names reused.
type NoteInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels"`
}

// ExpiringNote is a projection used by the expiry sweep: the note fields
// needed to compose a reminder plus the owner's address.
type ExpiringNote struct {
	NoteID        uuid.UUID
	Title         string
	Expiry        time.Time
	OwnerUsername string
	OwnerEmail    string
}

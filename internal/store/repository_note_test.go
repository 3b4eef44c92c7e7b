package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/models"
)

var noteCols = []string{"id", "title", "content", "created_at", "expiry", "user_id"}

func newTestNoteRepo(t *testing.T) (*noteRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &noteRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	return repo, mock, db
}

func TestCreateNote_Success(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	note := models.Note{Title: "groceries", Content: "milk, eggs", UserID: 1}
	labelID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO notes").
		WithArgs(sqlmock.AnyArg(), note.Title, note.Content, sqlmock.AnyArg(), note.UserID).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(uuid.New(), note.Title, note.Content, now, now.Add(7*24*time.Hour), note.UserID))
	mock.ExpectQuery("INSERT INTO labels").
		WithArgs(sqlmock.AnyArg(), "shopping").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(labelID, "shopping"))
	mock.ExpectExec("INSERT INTO note_label_association").
		WithArgs(sqlmock.AnyArg(), labelID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateNote(ctx, note, []string{"shopping"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected a generated note ID")
	}
	if len(created.Labels) != 1 || created.Labels[0].Name != "shopping" {
		t.Errorf("expected label shopping attached, got %+v", created.Labels)
	}
	if created.Expiry.IsZero() {
		t.Error("expected a default expiry to be assigned")
	}
}

func TestCreateNote_SkipsBlankLabels(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	note := models.Note{Title: "empty labels", UserID: 1}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO notes").
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(uuid.New(), note.Title, "", now, now.Add(time.Hour), note.UserID))
	mock.ExpectCommit()

	created, err := repo.CreateNote(ctx, note, []string{"", "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created.Labels) != 0 {
		t.Errorf("expected no labels, got %+v", created.Labels)
	}
}

func TestCreateNote_InsertFailureRollsBack(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO notes").
		WillReturnError(errors.New("db failure"))
	mock.ExpectRollback()

	_, err := repo.CreateNote(ctx, models.Note{Title: "doomed", UserID: 1}, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindNoteByID_Success(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	noteID := uuid.New()
	labelID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(noteID, int64(1)).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(noteID, "groceries", "milk", now, now.Add(time.Hour), int64(1)))
	mock.ExpectQuery("SELECT l.id, l.name").
		WithArgs(noteID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(labelID, "shopping"))

	note, err := repo.FindNoteByID(ctx, noteID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.ID != noteID {
		t.Errorf("expected note %s, got %s", noteID, note.ID)
	}
	if len(note.Labels) != 1 || note.Labels[0].Name != "shopping" {
		t.Errorf("expected label shopping, got %+v", note.Labels)
	}
}

func TestFindNoteByID_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	noteID := uuid.New()

	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(noteID, int64(1)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindNoteByID(ctx, noteID, 1)
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestFindNoteByID_WrongOwnerIsNotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	noteID := uuid.New()

	// ownership is part of the WHERE clause, so a foreign note scans no rows
	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(noteID, int64(2)).
		WillReturnRows(sqlmock.NewRows(noteCols))

	_, err := repo.FindNoteByID(ctx, noteID, 2)
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestListUserNotes_DistributesLabels(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	firstID := uuid.New()
	secondID := uuid.New()
	labelID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(firstID, "first", "a", now, now.Add(time.Hour), int64(1)).
			AddRow(secondID, "second", "b", now, now.Add(time.Hour), int64(1)))
	mock.ExpectQuery("SELECT nla.note_id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"note_id", "id", "name"}).
			AddRow(firstID, labelID, "shopping"))

	notes, err := repo.ListUserNotes(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if len(notes[0].Labels) != 1 || notes[0].Labels[0].Name != "shopping" {
		t.Errorf("expected first note labelled shopping, got %+v", notes[0].Labels)
	}
	if len(notes[1].Labels) != 0 {
		t.Errorf("expected second note without labels, got %+v", notes[1].Labels)
	}
}

func TestListUserNotes_Empty(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(noteCols))

	notes, err := repo.ListUserNotes(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notes == nil || len(notes) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", notes)
	}
}

func TestUpdateNote_ReplacesLabels(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	noteID := uuid.New()
	labelID := uuid.New()
	now := time.Now()
	note := models.Note{ID: noteID, Title: "renamed", Content: "updated", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE notes").
		WithArgs(note.Title, note.Content, noteID, note.UserID).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(noteID, note.Title, note.Content, now, now.Add(time.Hour), note.UserID))
	mock.ExpectExec("DELETE FROM note_label_association").
		WithArgs(noteID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("INSERT INTO labels").
		WithArgs(sqlmock.AnyArg(), "work").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(labelID, "work"))
	mock.ExpectExec("INSERT INTO note_label_association").
		WithArgs(noteID, labelID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.UpdateNote(ctx, note, []string{"work"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("expected title renamed, got %s", updated.Title)
	}
	if len(updated.Labels) != 1 || updated.Labels[0].Name != "work" {
		t.Errorf("expected label work, got %+v", updated.Labels)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	note := models.Note{ID: uuid.New(), Title: "ghost", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE notes").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.UpdateNote(ctx, note, nil)
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestDeleteNote_Success(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	noteID := uuid.New()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(noteID, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteNote(ctx, noteID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteNote_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	noteID := uuid.New()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(noteID, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteNote(ctx, noteID, 1)
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestListAllLabels_Ordered(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, name FROM labels").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.New(), "personal").
			AddRow(uuid.New(), "work"))

	labels, err := repo.ListAllLabels(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	if labels[0].Name != "personal" || labels[1].Name != "work" {
		t.Errorf("unexpected label order: %+v", labels)
	}
}

func TestListExpiringNotes_JoinsOwner(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	ctx := context.Background()
	noteID := uuid.New()
	deadline := time.Now().Add(24 * time.Hour)

	mock.ExpectQuery("SELECT n.id, n.title, n.expiry").
		WithArgs(deadline).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "expiry", "username", "email"}).
			AddRow(noteID, "soon gone", deadline.Add(-time.Hour), "john", "john@example.com"))

	expiring, err := repo.ListExpiringNotes(ctx, deadline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expiring) != 1 {
		t.Fatalf("expected 1 expiring note, got %d", len(expiring))
	}
	if expiring[0].OwnerEmail != "john@example.com" {
		t.Errorf("expected owner email, got %s", expiring[0].OwnerEmail)
	}
}

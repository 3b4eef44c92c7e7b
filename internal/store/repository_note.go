package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/models"
)

// defaultNoteLifetime is applied when a note is created without an explicit
// expiry, matching the one-week retention window of the product.
const defaultNoteLifetime = 7 * 24 * time.Hour

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// Notes live in the "notes" table; labels are global rows in "labels"
// deduplicated by name and linked through "note_label_association".
type noteRepository struct {
	logger *logger.Logger
	db     *DB
	sq     squirrel.StatementBuilderType
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateNote persists a new note and its label set in a single transaction.
//
// Each label name is trimmed and resolved through the atomic
// [getOrCreateLabel] upsert, so concurrent creations of the same label name
// converge on one row. A zero note.ID gets a fresh UUID; a zero expiry gets
// the default one-week lifetime.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note, labels []string) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.Expiry.IsZero() {
		note.Expiry = time.Now().Add(defaultNoteLifetime)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createNote, note.ID, note.Title, note.Content, note.Expiry, note.UserID)

	var created models.Note
	if err := row.Scan(&created.ID, &created.Title, &created.Content, &created.CreatedAt, &created.Expiry, &created.UserID); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: note creation failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created.Labels, err = r.attachLabels(ctx, tx, created.ID, labels)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: attaching labels failed")
		return models.Note{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// FindNoteByID retrieves a single note owned by userID with labels attached.
func (r *noteRepository) FindNoteByID(ctx context.Context, id uuid.UUID, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Select("id", "title", "content", "created_at", "expiry", "user_id").
		From("notes").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var note models.Note
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.Expiry, &note.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.FindNoteByID").Msg("error: note lookup failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	note.Labels, err = r.labelsForNote(ctx, note.ID)
	if err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// ListUserNotes returns every note owned by userID, newest first, with
// labels attached. Labels for the whole result set are fetched in one join
// query and distributed in memory.
func (r *noteRepository) ListUserNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Select("id", "title", "content", "created_at", "expiry", "user_id").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListUserNotes").Msg("error: notes query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.Expiry, &note.UserID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		note.Labels = make([]models.Label, 0)
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err := r.distributeLabels(ctx, userID, notes); err != nil {
		return nil, err
	}

	return notes, nil
}

// UpdateNote rewrites title, content and the full label set of an owned
// note in a single transaction. The label set is replaced wholesale:
// existing associations are detached and the new names resolved through the
// same upsert as creation.
func (r *noteRepository) UpdateNote(ctx context.Context, note models.Note, labels []string) (models.Note, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := r.sq.
		Update("notes").
		Set("title", note.Title).
		Set("content", note.Content).
		Where(squirrel.Eq{"id": note.ID, "user_id": note.UserID}).
		Suffix("RETURNING id, title, content, created_at, expiry, user_id").
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Note
	row := tx.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&updated.ID, &updated.Title, &updated.Content, &updated.CreatedAt, &updated.Expiry, &updated.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: note update failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if _, err := tx.ExecContext(ctx, detachAllLabels, updated.ID); err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: detaching labels failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	updated.Labels, err = r.attachLabels(ctx, tx, updated.ID, labels)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: attaching labels failed")
		return models.Note{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// DeleteNote removes an owned note. Associations go with it via cascade.
func (r *noteRepository) DeleteNote(ctx context.Context, id uuid.UUID, userID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Delete("notes").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error: note deletion failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// ListAllLabels returns every label in the system, ordered by name. Labels
// are global: this is the same list regardless of which user asks.
func (r *noteRepository) ListAllLabels(ctx context.Context) ([]models.Label, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Select("id", "name").
		From("labels").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListAllLabels").Msg("error: labels query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	labels := make([]models.Label, 0)
	for rows.Next() {
		var label models.Label
		if err := rows.Scan(&label.ID, &label.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return labels, nil
}

// ListExpiringNotes returns projections of notes expiring before the given
// deadline joined with their owners, for the reminder sweep.
func (r *noteRepository) ListExpiringNotes(ctx context.Context, before time.Time) ([]models.ExpiringNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Select("n.id", "n.title", "n.expiry", "u.username", "u.email").
		From("notes n").
		Join("users u ON u.id = n.user_id").
		Where(squirrel.LtOrEq{"n.expiry": before}).
		OrderBy("n.expiry").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListExpiringNotes").Msg("error: expiring notes query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	expiring := make([]models.ExpiringNote, 0)
	for rows.Next() {
		var item models.ExpiringNote
		if err := rows.Scan(&item.NoteID, &item.Title, &item.Expiry, &item.OwnerUsername, &item.OwnerEmail); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		expiring = append(expiring, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return expiring, nil
}

// attachLabels resolves each name via the get-or-create upsert and links the
// resulting labels to the note inside the caller's transaction.
func (r *noteRepository) attachLabels(ctx context.Context, tx *sql.Tx, noteID uuid.UUID, names []string) ([]models.Label, error) {
	labels := make([]models.Label, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var label models.Label
		row := tx.QueryRowContext(ctx, getOrCreateLabel, uuid.New(), name)
		if err := row.Scan(&label.ID, &label.Name); err != nil {
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}

		if _, err := tx.ExecContext(ctx, attachLabel, noteID, label.ID); err != nil {
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}

		labels = append(labels, label)
	}

	return labels, nil
}

// labelsForNote loads the ordered label list of a single note.
func (r *noteRepository) labelsForNote(ctx context.Context, noteID uuid.UUID) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx, labelsForNote, noteID)
	if err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	labels := make([]models.Label, 0)
	for rows.Next() {
		var label models.Label
		if err := rows.Scan(&label.ID, &label.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return labels, nil
}

// distributeLabels loads every (note_id, label) pair of the owner in one
// query and assigns the labels to the corresponding notes in memory.
func (r *noteRepository) distributeLabels(ctx context.Context, userID int64, notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx, noteLabelsByOwner, userID)
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	byNote := make(map[uuid.UUID][]models.Label, len(notes))
	for rows.Next() {
		var noteID uuid.UUID
		var label models.Label
		if err := rows.Scan(&noteID, &label.ID, &label.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		byNote[noteID] = append(byNote[noteID], label)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	for i := range notes {
		if labels, ok := byNote[notes[i].ID]; ok {
			notes[i].Labels = labels
		}
	}

	return nil
}

package database

import (
	"context"
	"database/sql"
	"errors"

	"personal-planner/models"
	"personal-planner/storage"

	"github.com/google/uuid"
)

// ==================== NOTE OPERATIONS ====================

const noteColumns = `id, user_id, text, completed, "timestamp", priority, recurring`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var note models.Note
	var priority string
	if err := row.Scan(
		&note.ID, &note.UserID, &note.Text, &note.Completed,
		&note.Timestamp, &priority, &note.Recurring,
	); err != nil {
		return nil, err
	}
	note.Priority = models.Priority(priority)
	return &note, nil
}

// ListNotes returns all of a user's notes, oldest first
func (r *Repository) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id = ?
		ORDER BY "timestamp" ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}

	return notes, rows.Err()
}

// InsertNote stores a note under a freshly assigned id
func (r *Repository) InsertNote(ctx context.Context, note models.Note) (*models.Note, error) {
	note.ID = uuid.New().String()
	if note.Priority == "" {
		note.Priority = models.PriorityNormal
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		note.ID, note.UserID, note.Text, note.Completed,
		note.Timestamp.UTC(), string(note.Priority), note.Recurring,
	)
	if err != nil {
		return nil, err
	}

	return r.getNote(ctx, note.UserID, note.ID)
}

// UpdateNote applies a partial update to one of the user's notes
func (r *Repository) UpdateNote(ctx context.Context, userID, noteID string, patch models.NotePatch) (*models.Note, error) {
	if patch.Completed != nil {
		res, err := r.db.ExecContext(ctx, `
			UPDATE notes SET completed = ?
			WHERE id = ? AND user_id = ?
		`, *patch.Completed, noteID, userID)
		if err != nil {
			return nil, err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, storage.ErrNotFound
		}
	}

	return r.getNote(ctx, userID, noteID)
}

func (r *Repository) getNote(ctx context.Context, userID, noteID string) (*models.Note, error) {
	note, err := scanNote(r.db.QueryRowContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE id = ? AND user_id = ?
	`, noteID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return note, err
}

package database

import (
	"context"
	"database/sql"
	"errors"

	"personal-planner/models"
	"personal-planner/storage"

	"github.com/google/uuid"
)

// ==================== REMINDER OPERATIONS ====================

const reminderColumns = `id, user_id, text, "time", category, completed, "date", "timestamp"`

func scanReminder(row rowScanner) (*models.Reminder, error) {
	var rem models.Reminder
	var category, date string
	if err := row.Scan(
		&rem.ID, &rem.UserID, &rem.Text, &rem.Time, &category,
		&rem.Completed, &date, &rem.Timestamp,
	); err != nil {
		return nil, err
	}

	key, err := models.ParseDateKey(date)
	if err != nil {
		return nil, err
	}
	rem.Date = key
	rem.Category = models.Category(category)
	return &rem, nil
}

// ListReminders returns all of a user's reminders, oldest first
func (r *Repository) ListReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE user_id = ?
		ORDER BY "timestamp" ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]models.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *rem)
	}

	return reminders, rows.Err()
}

// InsertReminder stores a reminder under a freshly assigned id
func (r *Repository) InsertReminder(ctx context.Context, rem models.Reminder) (*models.Reminder, error) {
	rem.ID = uuid.New().String()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rem.ID, rem.UserID, rem.Text, rem.Time, string(rem.Category),
		rem.Completed, rem.Date.String(), rem.Timestamp.UTC(),
	)
	if err != nil {
		return nil, err
	}

	return r.getReminder(ctx, rem.UserID, rem.ID)
}

// UpdateReminder applies a partial update to one of the user's reminders
func (r *Repository) UpdateReminder(ctx context.Context, userID, reminderID string, patch models.ReminderPatch) (*models.Reminder, error) {
	if patch.Completed != nil {
		res, err := r.db.ExecContext(ctx, `
			UPDATE reminders SET completed = ?
			WHERE id = ? AND user_id = ?
		`, *patch.Completed, reminderID, userID)
		if err != nil {
			return nil, err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, storage.ErrNotFound
		}
	}

	return r.getReminder(ctx, userID, reminderID)
}

func (r *Repository) getReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	rem, err := scanReminder(r.db.QueryRowContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE id = ? AND user_id = ?
	`, reminderID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return rem, err
}

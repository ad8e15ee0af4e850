// Package postgres implements storage.Provider on PostgreSQL. The schema
// matches the hosted planner tables, so DATABASE_URL can point straight at
// the managed database.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personal-planner/models"
	"personal-planner/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Provider = (*Store)(nil)

// New opens a connection pool and verifies it with a ping
func New(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, query := range migrations {
		if _, err := s.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ==================== USERS ====================

func (s *Store) UpsertUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastLoginAt.IsZero() {
		user.LastLoginAt = now
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, picture, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			picture = EXCLUDED.picture,
			last_login_at = EXCLUDED.last_login_at
	`, user.ID, user.Email, user.Name, user.Picture, user.CreatedAt, user.LastLoginAt)
	return err
}

// ==================== USER SETTINGS ====================

func (s *Store) GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	var us models.UserSettings
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, name, goals, routine, updated_at
		FROM user_settings WHERE user_id = $1
	`, userID).Scan(&us.UserID, &us.Name, &us.Goals, &us.Routine, &us.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &us, nil
}

func (s *Store) UpsertUserSettings(ctx context.Context, us *models.UserSettings) (*models.UserSettings, error) {
	updatedAt := us.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	var out models.UserSettings
	err := s.pool.QueryRow(ctx, `
		INSERT INTO user_settings (user_id, name, goals, routine, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			goals = EXCLUDED.goals,
			routine = EXCLUDED.routine,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, name, goals, routine, updated_at
	`, us.UserID, us.Name, us.Goals, us.Routine, updatedAt.UTC()).
		Scan(&out.UserID, &out.Name, &out.Goals, &out.Routine, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ==================== NOTES ====================

const noteColumns = `id::text, user_id, text, completed, "timestamp", priority, recurring`

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	var priority string
	if err := row.Scan(&n.ID, &n.UserID, &n.Text, &n.Completed, &n.Timestamp, &priority, &n.Recurring); err != nil {
		return nil, err
	}
	n.Priority = models.Priority(priority)
	return &n, nil
}

func (s *Store) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id = $1
		ORDER BY "timestamp" ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *Store) InsertNote(ctx context.Context, note models.Note) (*models.Note, error) {
	if note.Priority == "" {
		note.Priority = models.PriorityNormal
	}
	return scanNote(s.pool.QueryRow(ctx, `
		INSERT INTO notes (user_id, text, completed, "timestamp", priority, recurring)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+noteColumns,
		note.UserID, note.Text, note.Completed, note.Timestamp.UTC(), string(note.Priority), note.Recurring,
	))
}

func (s *Store) UpdateNote(ctx context.Context, userID, noteID string, patch models.NotePatch) (*models.Note, error) {
	n, err := scanNote(s.pool.QueryRow(ctx, `
		UPDATE notes SET completed = COALESCE($3, completed)
		WHERE id::text = $1 AND user_id = $2
		RETURNING `+noteColumns,
		noteID, userID, patch.Completed,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return n, err
}

// ==================== REMINDERS ====================

const reminderColumns = `id::text, user_id, text, "time", category, completed, "date", "timestamp"`

func scanReminder(row pgx.Row) (*models.Reminder, error) {
	var r models.Reminder
	var category string
	var date time.Time
	if err := row.Scan(&r.ID, &r.UserID, &r.Text, &r.Time, &category, &r.Completed, &date, &r.Timestamp); err != nil {
		return nil, err
	}
	r.Category = models.Category(category)
	r.Date = models.DateKeyOf(date, time.UTC)
	return &r, nil
}

func (s *Store) ListReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE user_id = $1
		ORDER BY "timestamp" ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]models.Reminder, 0)
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

func (s *Store) InsertReminder(ctx context.Context, rem models.Reminder) (*models.Reminder, error) {
	return scanReminder(s.pool.QueryRow(ctx, `
		INSERT INTO reminders (user_id, text, "time", category, completed, "date", "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6::date, $7)
		RETURNING `+reminderColumns,
		rem.UserID, rem.Text, rem.Time, string(rem.Category), rem.Completed, rem.Date.String(), rem.Timestamp.UTC(),
	))
}

func (s *Store) UpdateReminder(ctx context.Context, userID, reminderID string, patch models.ReminderPatch) (*models.Reminder, error) {
	r, err := scanReminder(s.pool.QueryRow(ctx, `
		UPDATE reminders SET completed = COALESCE($3, completed)
		WHERE id::text = $1 AND user_id = $2
		RETURNING `+reminderColumns,
		reminderID, userID, patch.Completed,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return r, err
}

package storage

import (
	"context"
	"errors"

	"personal-planner/models"
)

// ErrNotFound is returned by updates that match no row for the user
var ErrNotFound = errors.New("record not found")

// Provider is the table-level contract of the hosted store.
// Every read and write is scoped by user id; list operations order by
// timestamp ascending, then id.
type Provider interface {
	// ==================== USERS ====================

	// UpsertUser creates or refreshes the signed-in identity
	UpsertUser(ctx context.Context, user *models.User) error

	// ==================== USER SETTINGS ====================

	// GetUserSettings returns nil, nil when the user has no settings row
	GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error)

	// UpsertUserSettings inserts or replaces the row keyed by user_id
	UpsertUserSettings(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error)

	// ==================== NOTES ====================

	ListNotes(ctx context.Context, userID string) ([]models.Note, error)

	// InsertNote stores a new note and returns the stored row with its assigned id
	InsertNote(ctx context.Context, note models.Note) (*models.Note, error)

	UpdateNote(ctx context.Context, userID, noteID string, patch models.NotePatch) (*models.Note, error)

	// ==================== REMINDERS ====================

	ListReminders(ctx context.Context, userID string) ([]models.Reminder, error)

	InsertReminder(ctx context.Context, reminder models.Reminder) (*models.Reminder, error)

	UpdateReminder(ctx context.Context, userID, reminderID string, patch models.ReminderPatch) (*models.Reminder, error)

	// ==================== LIFECYCLE ====================

	Migrate(ctx context.Context) error
	Close() error
}

package services

import (
	"context"
	"time"

	"personal-planner/models"
	"personal-planner/session"
	"personal-planner/storage"
)

// StoreAdapter wraps the hosted store with user-scoped calls.
// Writes always carry the resolved user id, never one supplied by the caller,
// and failures come back as RemoteReadError or RemoteWriteError. Nothing is retried.
type StoreAdapter struct {
	store storage.Provider
	now   func() time.Time
}

func NewStoreAdapter(store storage.Provider) *StoreAdapter {
	return &StoreAdapter{store: store, now: time.Now}
}

// CurrentUser returns the user of the context's session, or nil. It never fails.
func (a *StoreAdapter) CurrentUser(ctx context.Context) *models.User {
	return session.UserFrom(ctx)
}

func (a *StoreAdapter) FetchSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	s, err := a.store.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, &RemoteReadError{Table: "user_settings", Err: err}
	}
	return s, nil
}

func (a *StoreAdapter) FetchNotes(ctx context.Context, userID string) ([]models.Note, error) {
	notes, err := a.store.ListNotes(ctx, userID)
	if err != nil {
		return nil, &RemoteReadError{Table: "notes", Err: err}
	}
	return notes, nil
}

func (a *StoreAdapter) FetchReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	reminders, err := a.store.ListReminders(ctx, userID)
	if err != nil {
		return nil, &RemoteReadError{Table: "reminders", Err: err}
	}
	return reminders, nil
}

func (a *StoreAdapter) InsertNote(ctx context.Context, userID string, draft models.Note) (*models.Note, error) {
	draft.ID = ""
	draft.UserID = userID
	note, err := a.store.InsertNote(ctx, draft)
	if err != nil {
		return nil, &RemoteWriteError{Op: "insert", Table: "notes", Err: err}
	}
	return note, nil
}

func (a *StoreAdapter) UpdateNote(ctx context.Context, userID, noteID string, patch models.NotePatch) (*models.Note, error) {
	note, err := a.store.UpdateNote(ctx, userID, noteID, patch)
	if err != nil {
		return nil, &RemoteWriteError{Op: "update", Table: "notes", Err: err}
	}
	return note, nil
}

func (a *StoreAdapter) InsertReminder(ctx context.Context, userID string, draft models.Reminder) (*models.Reminder, error) {
	draft.ID = ""
	draft.UserID = userID
	rem, err := a.store.InsertReminder(ctx, draft)
	if err != nil {
		return nil, &RemoteWriteError{Op: "insert", Table: "reminders", Err: err}
	}
	return rem, nil
}

func (a *StoreAdapter) UpdateReminder(ctx context.Context, userID, reminderID string, patch models.ReminderPatch) (*models.Reminder, error) {
	rem, err := a.store.UpdateReminder(ctx, userID, reminderID, patch)
	if err != nil {
		return nil, &RemoteWriteError{Op: "update", Table: "reminders", Err: err}
	}
	return rem, nil
}

// UpsertSettings inserts or replaces the user's settings and stamps updated_at
func (a *StoreAdapter) UpsertSettings(ctx context.Context, userID string, s models.UserSettings) (*models.UserSettings, error) {
	s.UserID = userID
	s.UpdatedAt = a.now().UTC()
	saved, err := a.store.UpsertUserSettings(ctx, &s)
	if err != nil {
		return nil, &RemoteWriteError{Op: "upsert", Table: "user_settings", Err: err}
	}
	return saved, nil
}

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"personal-planner/models"
	"personal-planner/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "planner-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))

	testUser := &models.User{
		ID:    "test-user",
		Email: "test@example.com",
		Name:  "Test User",
	}
	require.NoError(t, repo.UpsertUser(context.Background(), testUser))

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func TestUsers(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	user, err := repo.GetUser(ctx, "test-user")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "test@example.com", user.Email)

	err = repo.UpsertUser(ctx, &models.User{ID: "test-user", Email: "new@example.com", Name: "Renamed"})
	require.NoError(t, err)

	user, err = repo.GetUser(ctx, "test-user")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Renamed", user.Name)

	missing, err := repo.GetUser(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserSettings(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("No row before onboarding", func(t *testing.T) {
		s, err := repo.GetUserSettings(ctx, "test-user")
		assert.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("Upsert inserts then replaces", func(t *testing.T) {
		saved, err := repo.UpsertUserSettings(ctx, &models.UserSettings{
			UserID: "test-user", Name: "Ada", Goals: "Ship", Routine: "Mornings",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada", saved.Name)
		assert.False(t, saved.UpdatedAt.IsZero())

		saved, err = repo.UpsertUserSettings(ctx, &models.UserSettings{
			UserID: "test-user", Name: "Ada L.", Goals: "Ship more", Routine: "Evenings",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", saved.Name)
		assert.Equal(t, "Evenings", saved.Routine)
	})

	t.Run("Unknown user is rejected", func(t *testing.T) {
		_, err := repo.UpsertUserSettings(ctx, &models.UserSettings{
			UserID: "ghost", Name: "x", Goals: "y", Routine: "z",
		})
		assert.Error(t, err)
	})
}

func TestNotes(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	first, err := repo.InsertNote(ctx, models.Note{
		UserID:    "test-user",
		Text:      "Buy milk",
		Timestamp: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		Priority:  models.PriorityHigh,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Buy milk", first.Text)
	assert.False(t, first.Completed)
	assert.Equal(t, models.PriorityHigh, first.Priority)
	assert.True(t, first.Timestamp.Equal(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)))

	_, err = repo.InsertNote(ctx, models.Note{
		UserID:    "test-user",
		Text:      "Earlier",
		Timestamp: time.Date(2024, 5, 9, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	t.Run("List orders by timestamp ascending", func(t *testing.T) {
		notes, err := repo.ListNotes(ctx, "test-user")
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "Earlier", notes[0].Text)
		assert.Equal(t, models.PriorityNormal, notes[0].Priority)
		assert.Equal(t, "Buy milk", notes[1].Text)
	})

	t.Run("List is scoped by user", func(t *testing.T) {
		notes, err := repo.ListNotes(ctx, "someone-else")
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Update toggles completed", func(t *testing.T) {
		done := true
		updated, err := repo.UpdateNote(ctx, "test-user", first.ID, models.NotePatch{Completed: &done})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, first.Text, updated.Text)
	})

	t.Run("Update of another user's note is not found", func(t *testing.T) {
		done := false
		_, err := repo.UpdateNote(ctx, "intruder", first.ID, models.NotePatch{Completed: &done})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Insert for unknown user is rejected", func(t *testing.T) {
		_, err := repo.InsertNote(ctx, models.Note{UserID: "ghost", Text: "x", Timestamp: time.Now()})
		assert.Error(t, err)
	})

	t.Run("Insert with invalid priority is rejected", func(t *testing.T) {
		_, err := repo.InsertNote(ctx, models.Note{
			UserID: "test-user", Text: "x", Timestamp: time.Now(), Priority: "urgent",
		})
		assert.Error(t, err)
	})
}

func TestReminders(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	rem, err := repo.InsertReminder(ctx, models.Reminder{
		UserID:    "test-user",
		Text:      "Gym",
		Time:      "18:30",
		Category:  models.CategoryFitness,
		Date:      models.MustParseDateKey("2024-05-10"),
		Timestamp: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rem.ID)
	assert.Equal(t, "2024-05-10", rem.Date.String())
	assert.Equal(t, "18:30", rem.Time)
	assert.Equal(t, models.CategoryFitness, rem.Category)

	list, err := repo.ListReminders(ctx, "test-user")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rem.ID, list[0].ID)

	done := true
	updated, err := repo.UpdateReminder(ctx, "test-user", rem.ID, models.ReminderPatch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	_, err = repo.UpdateReminder(ctx, "test-user", "missing", models.ReminderPatch{Completed: &done})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.InsertReminder(ctx, models.Reminder{
		UserID: "test-user", Text: "x", Time: "10:00", Category: "hobby",
		Date: models.MustParseDateKey("2024-05-10"), Timestamp: time.Now(),
	})
	assert.Error(t, err)
}

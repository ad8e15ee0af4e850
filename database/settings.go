package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"personal-planner/models"
)

// ==================== SETTINGS OPERATIONS ====================

// GetUserSettings returns nil when the user has not completed onboarding
func (r *Repository) GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	var s models.UserSettings

	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, goals, routine, updated_at
		FROM user_settings WHERE user_id = ?
	`, userID).Scan(&s.UserID, &s.Name, &s.Goals, &s.Routine, &s.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// UpsertUserSettings inserts or replaces the user's settings row
func (r *Repository) UpsertUserSettings(ctx context.Context, s *models.UserSettings) (*models.UserSettings, error) {
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, name, goals, routine, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			goals = excluded.goals,
			routine = excluded.routine,
			updated_at = excluded.updated_at
	`, s.UserID, s.Name, s.Goals, s.Routine, updatedAt.UTC())
	if err != nil {
		return nil, err
	}

	return r.GetUserSettings(ctx, s.UserID)
}

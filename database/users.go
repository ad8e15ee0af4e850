package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"personal-planner/models"
)

// ==================== USER OPERATIONS ====================

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, picture, created_at, last_login_at
		FROM users WHERE id = ?
	`, userID).Scan(
		&user.ID, &user.Email, &user.Name, &user.Picture,
		&user.CreatedAt, &user.LastLoginAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpsertUser creates or updates a user record
func (r *Repository) UpsertUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastLoginAt.IsZero() {
		user.LastLoginAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, picture, created_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			picture = excluded.picture,
			last_login_at = excluded.last_login_at
	`,
		user.ID, user.Email, user.Name, user.Picture,
		user.CreatedAt.UTC(), user.LastLoginAt.UTC(),
	)
	return err
}

package models

import "time"

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// UserSettings is the onboarding profile, one row per user
type UserSettings struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Goals     string    `json:"goals"`
	Routine   string    `json:"routine"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Picture      string    `json:"picture"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenExpiry  time.Time `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	LastUsedAt   time.Time `json:"last_used_at"`
}

// User returns the identity the session was created for
func (s *Session) User() *User {
	return &User{
		ID:      s.UserID,
		Email:   s.Email,
		Name:    s.Name,
		Picture: s.Picture,
	}
}

package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"personal-planner/models"
)

// SessionStore defines the interface for session management
type SessionStore interface {
	Create(user *models.User, accessToken, refreshToken string, tokenExpiry time.Time) (*models.Session, error)
	Get(sessionID string) (*models.Session, error)
	Delete(sessionID string) error
}

// AuthRepository defines the interface for auth-related data access
type AuthRepository interface {
	UpsertUser(ctx context.Context, user *models.User) error
	GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error)
}

// IDTokenValidator checks a Google ID token against an audience.
// Production uses idtoken.Validate.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// ProfileFetcher loads the Google profile behind an OAuth token
type ProfileFetcher func(ctx context.Context, ts oauth2.TokenSource) (*UserInfo, error)

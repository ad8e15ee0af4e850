package session

import (
	"context"

	"personal-planner/models"
)

type userKey struct{}

// WithUser returns a context carrying the authenticated user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the authenticated user, or nil when the context has none
func UserFrom(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	user, _ := ctx.Value(userKey{}).(*models.User)
	if user == nil || user.ID == "" {
		return nil
	}
	return user
}

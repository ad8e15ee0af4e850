package session

import (
	"context"
	"testing"
	"time"

	"personal-planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Lifecycle(t *testing.T) {
	store := NewStore(time.Hour)
	user := &models.User{ID: "u1", Email: "u1@example.com", Name: "U"}

	sess, err := store.Create(user, "access", "refresh", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "u1", sess.UserID)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, store.Delete(sess.ID))
	got, err = store.Get(sess.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Hour)
	store.now = func() time.Time { return now }

	sess, err := store.Create(&models.User{ID: "u1"}, "", "", time.Time{})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)

	got, err := store.Get(sess.ID)
	assert.NoError(t, err)
	assert.Nil(t, got, "expired session must not be returned")

	assert.Equal(t, 1, store.CleanupExpired())
	assert.Equal(t, 0, store.CleanupExpired())
}

func TestStore_DefaultTTL(t *testing.T) {
	store := NewStore(0)
	sess, err := store.Create(&models.User{ID: "u1"}, "", "", time.Time{})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), sess.ExpiresAt, time.Minute)
}

func TestUserContext(t *testing.T) {
	assert.Nil(t, UserFrom(context.Background()))
	assert.Nil(t, UserFrom(WithUser(context.Background(), &models.User{})))

	ctx := WithUser(context.Background(), &models.User{ID: "u1"})
	require.NotNil(t, UserFrom(ctx))
	assert.Equal(t, "u1", UserFrom(ctx).ID)
}

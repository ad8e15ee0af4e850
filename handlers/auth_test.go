package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"personal-planner/app"
	"personal-planner/config"
	"personal-planner/config/setup"
	"personal-planner/database"
	"personal-planner/session"
)

const (
	testClientID = "test-client-id"
	validToken   = "valid-id-token"
)

// fakeGoogle accepts validToken for testClientID and nothing else
func fakeGoogle(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
	if token != validToken || audience != testClientID {
		return nil, errors.New("invalid signature")
	}
	return &idtoken.Payload{
		Subject: "google-sub-1",
		Claims: map[string]interface{}{
			"email": "bearer@example.com",
			"name":  "Bearer User",
		},
	}, nil
}

// setupRoutedApp wires the production routes over a fresh store with no users
func setupRoutedApp(t *testing.T) (*fiber.App, *database.Repository) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to initialize test database")

	repo := database.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()), "Failed to run migrations")
	t.Cleanup(func() { repo.Close() })

	cfg := &config.Config{
		Env:            "test",
		Location:       time.UTC,
		SessionTTL:     time.Hour,
		GoogleClientID: testClientID,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	application := app.New(cfg, repo, session.NewStore(cfg.SessionTTL), logger)
	application.AuthService.SetIDTokenValidator(fakeGoogle)

	fiberApp := fiber.New()
	setup.RegisterRoutes(fiberApp, application)
	return fiberApp, repo
}

// doWithHeaders sends a JSON request with extra headers and decodes the reply
func doWithHeaders(t *testing.T, fiberApp *fiber.App, method, url string, headers map[string]string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestBearerClientCanWrite(t *testing.T) {
	fiberApp, repo := setupRoutedApp(t)

	resp, body := doWithHeaders(t, fiberApp, http.MethodPost, "/api/notes", bearer(validToken),
		map[string]interface{}{"text": "Buy milk", "priority": "high", "date": "2024-05-10"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)
	assert.Equal(t, "google-sub-1", body["note"].(map[string]interface{})["user_id"])

	user, err := repo.GetUser(context.Background(), "google-sub-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "bearer@example.com", user.Email)

	resp, body = doWithHeaders(t, fiberApp, http.MethodPost, "/api/reminders", bearer(validToken),
		map[string]interface{}{"text": "Standup", "date": "2024-05-10"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)

	resp, body = doWithHeaders(t, fiberApp, http.MethodPut, "/api/settings", bearer(validToken),
		map[string]interface{}{"name": "Ana", "goals": "Run", "routine": "Mornings"})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)
	assert.Equal(t, false, body["show_onboarding"])

	resp, body = doWithHeaders(t, fiberApp, http.MethodGet, "/api/days/2024-05-10", bearer(validToken), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	day := body["day"].(map[string]interface{})
	assert.Len(t, day["notes"].([]interface{}), 1)
	assert.Len(t, day["reminders"].([]interface{}), 1)
}

func TestBearerRejectedToken(t *testing.T) {
	fiberApp, repo := setupRoutedApp(t)

	resp, body := doWithHeaders(t, fiberApp, http.MethodPost, "/api/notes", bearer("forged"),
		map[string]interface{}{"text": "Buy milk"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "auth", notification(t, body)["kind"])

	user, err := repo.GetUser(context.Background(), "google-sub-1")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestLogin(t *testing.T) {
	t.Run("Valid ID token starts a session", func(t *testing.T) {
		fiberApp, _ := setupRoutedApp(t)

		resp, body := doWithHeaders(t, fiberApp, http.MethodPost, "/api/auth/login", nil,
			map[string]interface{}{"id_token": validToken})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "google-sub-1", user["id"])
		assert.Equal(t, true, user["show_onboarding"])

		var cookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == "session_id" {
				cookie = c
			}
		}
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
	})

	t.Run("Rejected ID token is unauthorized", func(t *testing.T) {
		fiberApp, _ := setupRoutedApp(t)

		resp, body := doWithHeaders(t, fiberApp, http.MethodPost, "/api/auth/login", nil,
			map[string]interface{}{"id_token": "forged"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Authentication failed", body["error"])
	})

	t.Run("Store failure is a server error", func(t *testing.T) {
		fiberApp, repo := setupRoutedApp(t)
		require.NoError(t, repo.Close())

		resp, body := doWithHeaders(t, fiberApp, http.MethodPost, "/api/auth/login", nil,
			map[string]interface{}{"id_token": validToken})
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to complete sign-in", body["error"])
	})

	t.Run("Missing credentials", func(t *testing.T) {
		fiberApp, _ := setupRoutedApp(t)

		resp, _ := doWithHeaders(t, fiberApp, http.MethodPost, "/api/auth/login", nil, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

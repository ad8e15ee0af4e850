package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key Load reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "ENV", "LOG_LEVEL", "CORS_ORIGINS", "STORE_DRIVER", "DB_PATH",
		"DATABASE_URL", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URL",
		"TIMEZONE", "SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"8080\"\ntimezone: Europe/Madrid\nsession_ttl: 24h\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Europe/Madrid", cfg.Location.String())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Unknown timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{name: "Bad TTL", env: map[string]string{"SESSION_TTL": "soon"}},
		{name: "Unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "Postgres without URL", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "Missing config file", env: map[string]string{"CONFIG_FILE": "/nonexistent/planner.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

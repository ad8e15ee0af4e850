package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins string

	StoreDriver string
	DBPath      string
	DatabaseURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	Timezone   string
	Location   *time.Location
	SessionTTL time.Duration
}

// fileConfig is the optional YAML file named by CONFIG_FILE.
// Its values are defaults; environment variables win.
type fileConfig struct {
	Port               string `yaml:"port"`
	Env                string `yaml:"env"`
	LogLevel           string `yaml:"log_level"`
	CORSOrigins        string `yaml:"cors_origins"`
	StoreDriver        string `yaml:"store_driver"`
	DBPath             string `yaml:"db_path"`
	DatabaseURL        string `yaml:"database_url"`
	GoogleClientID     string `yaml:"google_client_id"`
	GoogleClientSecret string `yaml:"google_client_secret"`
	GoogleRedirectURL  string `yaml:"google_redirect_url"`
	Timezone           string `yaml:"timezone"`
	SessionTTL         string `yaml:"session_ttl"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := &Config{
		Port:               GetEnv("PORT", orDefault(file.Port, "3000")),
		Env:                GetEnv("ENV", orDefault(file.Env, "development")),
		LogLevel:           GetEnv("LOG_LEVEL", orDefault(file.LogLevel, "info")),
		CORSOrigins:        GetEnv("CORS_ORIGINS", orDefault(file.CORSOrigins, "*")),
		StoreDriver:        strings.ToLower(GetEnv("STORE_DRIVER", orDefault(file.StoreDriver, DriverSQLite))),
		DBPath:             GetEnv("DB_PATH", orDefault(file.DBPath, "./data/planner.db")),
		DatabaseURL:        GetEnv("DATABASE_URL", file.DatabaseURL),
		GoogleClientID:     GetEnv("GOOGLE_CLIENT_ID", file.GoogleClientID),
		GoogleClientSecret: GetEnv("GOOGLE_CLIENT_SECRET", file.GoogleClientSecret),
		GoogleRedirectURL:  GetEnv("GOOGLE_REDIRECT_URL", orDefault(file.GoogleRedirectURL, "http://localhost:3000/auth/google/callback")),
		Timezone:           GetEnv("TIMEZONE", orDefault(file.Timezone, "UTC")),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	ttl, err := time.ParseDuration(GetEnv("SESSION_TTL", orDefault(file.SessionTTL, "720h")))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL")
	}
	cfg.SessionTTL = ttl

	switch cfg.StoreDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

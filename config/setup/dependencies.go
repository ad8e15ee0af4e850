package setup

import (
	"context"
	"fmt"
	"log/slog"

	"personal-planner/app"
	"personal-planner/config"
	"personal-planner/database"
	"personal-planner/services"
	"personal-planner/session"
	"personal-planner/storage"
	"personal-planner/storage/postgres"
)

// InitStore opens the configured store provider and runs migrations
func InitStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Provider, error) {
	var store storage.Provider

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = pg
	case config.DriverSQLite:
		db, err := database.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		store = database.NewRepository(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	logger.Info("store initialized", "driver", cfg.StoreDriver)
	return store, nil
}

// InitApp initializes the application with all dependencies
func InitApp(cfg *config.Config, store storage.Provider, logger *slog.Logger) (*app.App, error) {
	sessionStore := session.NewStore(cfg.SessionTTL)
	application := app.New(cfg, store, sessionStore, logger)
	logger.Info("application initialized with dependency injection")

	dropIdlePlanners := func() {
		if n := application.Planners.DropIdle(services.PlannerIdleTTL); n > 0 {
			logger.Info("idle planners dropped", "count", n)
		}
	}
	if err := sessionStore.StartCleanupRoutine(logger, dropIdlePlanners); err != nil {
		return nil, err
	}
	logger.Info("session cleanup routine started")

	return application, nil
}

// Shutdown performs graceful shutdown of all services
func Shutdown(application *app.App, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if application.SessionStore != nil {
		application.SessionStore.StopCleanupRoutine()
		logger.Info("session cleanup stopped")
	}

	if application.Store != nil {
		if err := application.Store.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		} else {
			logger.Info("store closed")
		}
	}
}

package app

import (
	"log/slog"

	"personal-planner/config"
	"personal-planner/services"
	"personal-planner/session"
	"personal-planner/storage"
	"personal-planner/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config       *config.Config
	Store        storage.Provider
	SessionStore *session.Store
	AuthService  *services.AuthService
	Planners     *services.PlannerService
	Validator    *validator.Validator
	Logger       *slog.Logger
}

// New creates a new App instance with all dependencies
func New(cfg *config.Config, store storage.Provider, sessionStore *session.Store, logger *slog.Logger) *App {
	oauthConfig := services.NewGoogleOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	return &App{
		Config:       cfg,
		Store:        store,
		SessionStore: sessionStore,
		AuthService:  services.NewAuthService(store, sessionStore, oauthConfig),
		Planners:     services.NewPlannerService(store, services.LogNotifier{Logger: logger}, cfg.Location, logger),
		Validator:    validator.New(),
		Logger:       logger,
	}
}

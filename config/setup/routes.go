package setup

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"personal-planner/app"
	"personal-planner/handlers"
	"personal-planner/middleware"
	"personal-planner/models"
	"personal-planner/services"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	authenticate := middleware.Authenticate(application.SessionStore, bearerVerifier(application))

	// Public routes
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	fiberApp.Get("/", authenticate, handlers.HomePage(application))

	// Auth routes
	fiberApp.Post("/api/auth/login", handlers.Login(application))
	fiberApp.Get("/auth/google", handlers.GoogleLogin(application))
	fiberApp.Get("/auth/google/callback", handlers.GoogleCallback(application))
	fiberApp.Post("/api/auth/logout", authenticate, handlers.Logout(application))
	fiberApp.Get("/api/auth/me", authenticate, middleware.AuthRequired(), handlers.Me(application))

	// Planner routes resolve the session but report a missing one themselves
	api := fiberApp.Group("/api", authenticate, limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID := middleware.GetUserID(c); userID != "" {
				return "user:" + userID
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded for your account",
			})
		},
	}))

	api.Get("/planner", handlers.GetPlanner(application))
	api.Post("/planner/reload", handlers.ReloadPlanner(application))
	api.Get("/days/:date", handlers.GetDay(application))
	api.Get("/calendar/:month", handlers.GetCalendar(application))
	api.Get("/focus", handlers.GetFocus(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Post("/notes/:id/toggle", handlers.ToggleNote(application))
	api.Get("/reminders.ics", handlers.ExportReminders(application))
	api.Post("/reminders", handlers.CreateReminder(application))
	api.Post("/reminders/:id/toggle", handlers.ToggleReminder(application))
	api.Get("/settings", handlers.GetSettings(application))
	api.Put("/settings", handlers.SaveSettings(application))
}

// bearerVerifier accepts Google ID tokens issued for this client and makes
// sure the user row exists before planner writes reference it
func bearerVerifier(application *app.App) middleware.TokenVerifier {
	if application.Config.GoogleClientID == "" {
		return nil
	}
	return func(ctx context.Context, token string) (*models.User, error) {
		user, err := application.AuthService.AuthenticateIDToken(ctx, token, application.Config.GoogleClientID)
		if err != nil {
			if !services.IsCredentialError(err) {
				application.Logger.Error("bearer sign-in failed", "error", err)
			}
			return nil, err
		}
		return user, nil
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"personal-planner/app"
	"personal-planner/models"
	"personal-planner/services"
)

func GetSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		return success(c, fiber.Map{
			"settings":        p.Settings(),
			"show_onboarding": p.ShowOnboarding(),
		})
	}
}

// SaveSettings stores the onboarding answers
func SaveSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SaveSettingsRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		out := p.SaveSettings(c.UserContext(), services.SettingsDraft{
			Name:    req.Name,
			Goals:   req.Goals,
			Routine: req.Routine,
		})

		return respond(c, out.Notification, fiber.StatusOK, fiber.Map{
			"settings":        out.Record,
			"show_onboarding": p.ShowOnboarding(),
		})
	}
}

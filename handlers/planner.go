package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"personal-planner/app"
	"personal-planner/utils"
)

// GetPlanner returns settings, the onboarding flag and the selected day
func GetPlanner(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, err := resolveDay(a, c.Query("date"))
		if err != nil {
			return badRequest(c, err.Error())
		}

		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		return success(c, fiber.Map{
			"settings":        p.Settings(),
			"show_onboarding": p.ShowOnboarding(),
			"loading":         p.Loading(),
			"today":           p.Today(),
			"day":             p.DayView(key),
		})
	}
}

// ReloadPlanner refetches everything from the store
func ReloadPlanner(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, n := a.Planners.Reload(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		return success(c, fiber.Map{
			"success":         true,
			"show_onboarding": p.ShowOnboarding(),
			"today":           p.Today(),
		})
	}
}

// GetDay returns the notes, reminders and progress for one day
func GetDay(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, err := resolveDay(a, c.Params("date"))
		if err != nil {
			return badRequest(c, err.Error())
		}

		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		return success(c, fiber.Map{"day": p.DayView(key)})
	}
}

// GetCalendar returns the per-day markers of a month
func GetCalendar(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		month, err := utils.ResolveMonth(c.Params("month"), time.Now(), a.Planners.Location())
		if err != nil {
			return badRequest(c, err.Error())
		}

		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		return success(c, fiber.Map{
			"month":   month.String()[:7],
			"markers": p.Markers(month),
		})
	}
}

// GetFocus returns the open tasks of a day ordered by priority
func GetFocus(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, err := resolveDay(a, c.Query("date"))
		if err != nil {
			return badRequest(c, err.Error())
		}

		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		return success(c, fiber.Map{
			"date":  key,
			"tasks": p.Focus(key),
		})
	}
}

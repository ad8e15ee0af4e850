package handlers

import (
	"github.com/gofiber/fiber/v2"

	"personal-planner/app"
	"personal-planner/models"
	"personal-planner/services"
)

// CreateReminder adds a reminder to the selected day
func CreateReminder(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateReminderRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		day, err := parseOptionalDay(req.Date)
		if err != nil {
			return badRequest(c, err.Error())
		}

		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusCreated, nil)
		}

		out := p.AddReminder(c.UserContext(), services.ReminderDraft{
			Text:     req.Text,
			Time:     req.Time,
			Category: models.Category(req.Category),
			Date:     day,
		})

		return respond(c, out.Notification, fiber.StatusCreated, fiber.Map{"reminder": out.Record})
	}
}

func ToggleReminder(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return badRequest(c, "reminder id is required")
		}

		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		out := p.ToggleReminder(c.UserContext(), id)
		return respond(c, out.Notification, fiber.StatusOK, fiber.Map{"reminder": out.Record})
	}
}

// ExportReminders serves every reminder as an .ics feed
func ExportReminders(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reminders.ics"`)
		return c.SendString(services.RemindersCalendar(p.AllReminders(), a.Planners.Location()))
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"personal-planner/app"
	"personal-planner/models"
	"personal-planner/services"
)

// CreateNote adds a task to the selected day (today when no date is given)
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
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

		out := p.AddNote(c.UserContext(), services.NoteDraft{
			Text:     req.Text,
			Priority: models.Priority(req.Priority),
			Date:     day,
		})

		return respond(c, out.Notification, fiber.StatusCreated, fiber.Map{"note": out.Record})
	}
}

// ToggleNote flips a task's completed flag
func ToggleNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return badRequest(c, "note id is required")
		}

		p, n := a.Planners.Open(c.UserContext())
		if p == nil {
			return respond(c, n, fiber.StatusOK, nil)
		}

		out := p.ToggleNote(c.UserContext(), id)
		return respond(c, out.Notification, fiber.StatusOK, fiber.Map{"note": out.Record})
	}
}

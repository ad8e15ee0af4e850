package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"personal-planner/app"
	"personal-planner/models"
	"personal-planner/services"
	"personal-planner/utils"
	"personal-planner/validator"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": errs,
		})
	}
	return badRequest(c, err.Error())
}

// statusFor maps a notification's failure kind to an HTTP status
func statusFor(n services.Notification, okStatus int) int {
	switch n.Kind {
	case services.KindAuth:
		return fiber.StatusUnauthorized
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindRemoteWrite:
		return fiber.StatusBadGateway
	}
	return okStatus
}

// respond writes data along with the operation's notification
func respond(c *fiber.Ctx, n services.Notification, okStatus int, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if n.Failed() {
		c.Locals("failureKind", string(n.Kind))
	}
	data["success"] = !n.Failed()
	if !n.IsZero() {
		data["notification"] = n
	}
	return c.Status(statusFor(n, okStatus)).JSON(data)
}

// resolveDay reads a day from user input in the planner's time zone
func resolveDay(a *app.App, input string) (models.DateKey, error) {
	return utils.ResolveDate(input, time.Now(), a.Planners.Location())
}

// parseOptionalDay parses a canonical date field, zero when empty
func parseOptionalDay(input string) (models.DateKey, error) {
	if input == "" {
		return models.DateKey{}, nil
	}
	return models.ParseDateKey(input)
}

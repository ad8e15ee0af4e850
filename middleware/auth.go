package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"personal-planner/models"
	"personal-planner/session"
)

// TokenVerifier resolves a Bearer ID token to the user it identifies
type TokenVerifier func(ctx context.Context, token string) (*models.User, error)

// Authenticate resolves the session cookie, or failing that a Bearer ID token,
// and attaches the user to the request. It never rejects; routes decide what
// an anonymous request gets.
func Authenticate(sessionStore *session.Store, verify TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session_id")
		if sessionID != "" {
			sess, err := sessionStore.Get(sessionID)
			if err == nil && sess != nil {
				sessionStore.Touch(sessionID)
				c.Locals("session", sess)
				setUser(c, sess.User())
				return c.Next()
			}
			c.ClearCookie("session_id")
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" || verify == nil {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}

		user, err := verify(c.UserContext(), parts[1])
		if err == nil && user != nil {
			setUser(c, user)
		}

		return c.Next()
	}
}

// AuthRequired rejects requests that Authenticate could not resolve
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization",
			})
		}
		return c.Next()
	}
}

func setUser(c *fiber.Ctx, user *models.User) {
	c.Locals("userID", user.ID)
	c.Locals("userEmail", user.Email)
	c.SetUserContext(session.WithUser(c.UserContext(), user))
}

func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}

func GetUserEmail(c *fiber.Ctx) string {
	email, ok := c.Locals("userEmail").(string)
	if !ok {
		return ""
	}
	return email
}

// GetSession returns the cookie session, or nil for Bearer and anonymous requests
func GetSession(c *fiber.Ctx) *models.Session {
	sess, _ := c.Locals("session").(*models.Session)
	return sess
}

package handlers

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"personal-planner/app"
	"personal-planner/middleware"
	"personal-planner/models"
	"personal-planner/services"
)

// Login handles user authentication via a Google ID token, code or access token
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		var loginResponse *services.LoginResponse
		var err error

		switch {
		case req.IDToken != "":
			a.Logger.Debug("login with ID token")
			loginResponse, err = a.AuthService.LoginWithIDToken(c.UserContext(), req.IDToken, a.Config.GoogleClientID)
		case req.Code != "":
			a.Logger.Debug("login with authorization code")
			loginResponse, err = a.AuthService.LoginWithCode(c.UserContext(), req.Code)
		case req.AccessToken != "":
			a.Logger.Debug("login with access token")
			loginResponse, err = a.AuthService.LoginWithToken(c.UserContext(), req.AccessToken, req.RefreshToken, req.ExpiresIn)
		default:
			return badRequest(c, "One of id_token, code or access_token is required")
		}

		if err != nil {
			if !services.IsCredentialError(err) {
				return serverErrorWithDetails(c, "Failed to complete sign-in", err)
			}
			a.Logger.Warn("login failed", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication failed",
			})
		}

		setSessionCookie(a, c, loginResponse.Session)

		a.Logger.Info("login successful",
			"user_id", loginResponse.Session.UserID,
			"show_onboarding", loginResponse.ShowOnboarding)

		return c.JSON(fiber.Map{
			"success": true,
			"user": fiber.Map{
				"id":              loginResponse.Session.UserID,
				"email":           loginResponse.Session.Email,
				"name":            loginResponse.Session.Name,
				"picture":         loginResponse.Session.Picture,
				"show_onboarding": loginResponse.ShowOnboarding,
			},
		})
	}
}

// Logout handles user logout and drops the cached planner
func Logout(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessionID := c.Cookies("session_id"); sessionID != "" {
			if err := a.AuthService.Logout(sessionID); err != nil {
				a.Logger.Warn("logout failed", "error", err)
			}
		}
		if userID := middleware.GetUserID(c); userID != "" {
			a.Planners.Forget(userID)
		}

		c.ClearCookie("session_id")

		return c.JSON(fiber.Map{
			"success": true,
		})
	}
}

// Me returns the current user's session information
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := middleware.GetSession(c)
		if sess == nil {
			return c.JSON(fiber.Map{
				"authenticated": true,
				"user": fiber.Map{
					"id":    middleware.GetUserID(c),
					"email": middleware.GetUserEmail(c),
				},
			})
		}

		return c.JSON(fiber.Map{
			"authenticated": true,
			"user": fiber.Map{
				"id":      sess.UserID,
				"email":   sess.Email,
				"name":    sess.Name,
				"picture": sess.Picture,
			},
			"expires_at": sess.ExpiresAt,
		})
	}
}

// GoogleLogin redirects to the Google OAuth consent screen
func GoogleLogin(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := uuid.NewString()

		authURL, err := a.AuthService.AuthCodeURL(state)
		if errors.Is(err, services.ErrOAuthUnavailable) {
			return c.Redirect("/?error=oauth_unavailable", fiber.StatusTemporaryRedirect)
		}

		// State is checked on the callback for CSRF protection
		c.Cookie(&fiber.Cookie{
			Name:     "oauth_state",
			Value:    state,
			Expires:  time.Now().Add(10 * time.Minute),
			HTTPOnly: true,
			Secure:   a.Config.IsProduction(),
			SameSite: "Lax",
			Path:     "/",
		})

		return c.Redirect(authURL, fiber.StatusTemporaryRedirect)
	}
}

// GoogleCallback handles the OAuth callback from Google
func GoogleCallback(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stateCookie := c.Cookies("oauth_state")
		if stateCookie == "" {
			a.Logger.Warn("oauth callback without state cookie")
			return c.Redirect("/?error=invalid_state", fiber.StatusTemporaryRedirect)
		}

		c.ClearCookie("oauth_state")

		if c.Query("state") != stateCookie {
			a.Logger.Warn("oauth state mismatch")
			return c.Redirect("/?error=invalid_state", fiber.StatusTemporaryRedirect)
		}

		if errParam := c.Query("error"); errParam != "" {
			a.Logger.Warn("oauth error from google", "error", errParam)
			return c.Redirect("/?error="+url.QueryEscape(errParam), fiber.StatusTemporaryRedirect)
		}

		code := c.Query("code")
		if code == "" {
			return c.Redirect("/?error=missing_code", fiber.StatusTemporaryRedirect)
		}

		loginResponse, err := a.AuthService.LoginWithCode(c.UserContext(), code)
		if err != nil {
			if !services.IsCredentialError(err) {
				a.Logger.Error("sign-in failed", "error", err)
				return c.Redirect("/?error=server_error", fiber.StatusTemporaryRedirect)
			}
			a.Logger.Warn("login failed", "error", err)
			return c.Redirect("/?error=login_failed", fiber.StatusTemporaryRedirect)
		}

		setSessionCookie(a, c, loginResponse.Session)

		a.Logger.Info("login successful", "user_id", loginResponse.Session.UserID)

		return c.Redirect("/", fiber.StatusTemporaryRedirect)
	}
}

func setSessionCookie(a *app.App, c *fiber.Ctx, sess *models.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     "session_id",
		Value:    sess.ID,
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   a.Config.IsProduction(),
		SameSite: "Lax",
		Path:     "/",
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"personal-planner/app"
	"personal-planner/middleware"
	"personal-planner/templates/pages"
)

// HomePage renders the planner for the selected date and section
func HomePage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		selected, err := resolveDay(a, c.Query("date"))
		if err != nil {
			return badRequest(c, err.Error())
		}

		section := c.Query("section", pages.SectionCalendar)
		if section != pages.SectionFocus {
			section = pages.SectionCalendar
		}

		data := pages.PlannerPage{
			Env:            a.Config.Env,
			GoogleClientID: a.Config.GoogleClientID,
			Section:        section,
			Selected:       selected,
		}

		// without a session the page renders the sign-in notice
		if p, _ := a.Planners.Open(c.UserContext()); p != nil {
			data.Authenticated = true
			data.Today = p.Today()
			data.ShowOnboarding = p.ShowOnboarding()
			data.Settings = p.Settings()
			data.Day = p.DayView(selected)
			data.Markers = p.Markers(selected)
			data.Focus = p.Focus(selected)
			if sess := middleware.GetSession(c); sess != nil {
				data.UserName = sess.Name
			}
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return pages.Planner(data).Render(c.UserContext(), c.Response().BodyWriter())
	}
}

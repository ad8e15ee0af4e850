package services

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"personal-planner/models"
)

// reminderLength is the event duration given to reminders in calendar exports
const reminderLength = 30 * time.Minute

// RemindersCalendar serializes reminders as an iCalendar feed.
// Start times are read as wall-clock times in loc.
func RemindersCalendar(reminders []models.Reminder, loc *time.Location) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//personal-planner//reminders//EN")

	for _, r := range reminders {
		start := r.StartsAt(loc)

		event := cal.AddEvent(r.ID + "@personal-planner")
		event.SetDtStampTime(r.Timestamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(reminderLength))
		event.SetSummary(r.Text)
		event.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(r.Category)))
		if r.Completed {
			event.SetProperty(ical.ComponentPropertyStatus, "COMPLETED")
		}
	}

	return cal.Serialize()
}

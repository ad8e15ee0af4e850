// Package pages renders the server-side planner page.
package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"personal-planner/models"
	"personal-planner/services"
)

const (
	SectionCalendar = "calendar"
	SectionFocus    = "focus"
)

// PlannerPage is everything the page needs for one render
type PlannerPage struct {
	Env            string
	GoogleClientID string
	Authenticated  bool
	UserName       string
	Section        string
	Today          models.DateKey
	Selected       models.DateKey
	ShowOnboarding bool
	Settings       *models.UserSettings
	Day            services.DayView
	Markers        []services.DayMarker
	Focus          []models.Note
}

// Planner renders the full page
func Planner(data PlannerPage) templ.Component {
	var body templ.Component
	switch {
	case !data.Authenticated:
		body = signIn(data)
	case data.ShowOnboarding:
		body = onboarding()
	case data.Section == SectionFocus:
		body = focus(data)
	default:
		body = calendar(data)
	}
	return layout("Personal Planner", data, body)
}

func layout(title string, data PlannerPage, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title>%s</head><body>`,
			templ.EscapeString(title), styles); err != nil {
			return err
		}
		if data.Authenticated {
			if err := nav(data).Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<div id="toast" role="status"></div></main>`+script+`</body></html>`)
		return err
	})
}

func nav(data PlannerPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		date := data.Selected.String()
		_, err := fmt.Fprintf(w, `<nav><span class="brand">Personal Planner</span><a href="/?section=calendar&date=%s"%s>Calendar</a><a href="/?section=focus&date=%s"%s>Focus</a><span class="user">%s</span><button data-action="logout">Sign out</button></nav>`,
			date, activeIf(data.Section != SectionFocus),
			date, activeIf(data.Section == SectionFocus),
			templ.EscapeString(data.UserName))
		return err
	})
}

func signIn(data PlannerPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="card"><h1>Authentication Error</h1><p>Please sign in to continue.</p><a class="button" href="/auth/google">Sign in with Google</a><div id="g_id_onload" data-client_id="%s" data-callback="onGoogleCredential"></div></section>`,
			templ.EscapeString(data.GoogleClientID))
		return err
	})
}

func onboarding() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="card"><h1>Welcome to your Personal Planner</h1><p>Tell us a little about yourself to get started.</p>`+
			`<form data-endpoint="/api/settings" data-method="PUT">`+
			`<label>Name<input name="name" required></label>`+
			`<label>Goals<textarea name="goals" required></textarea></label>`+
			`<label>Daily routine<textarea name="routine" required></textarea></label>`+
			`<button type="submit">Get started</button></form></section>`)
		return err
	})
}

func calendar(data PlannerPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		month := data.Selected.MonthKey()
		prev := month.AddDays(-1).MonthKey()
		next := month.AddDays(len(month.DaysInMonth()))

		var b strings.Builder
		fmt.Fprintf(&b, `<section class="calendar"><header><a href="/?date=%s">&larr;</a><h2>%s %d</h2><a href="/?date=%s">&rarr;</a></header><div class="grid">`,
			prev, month.Month, month.Year, next)
		for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
			fmt.Fprintf(&b, `<span class="weekday">%s</span>`, wd)
		}
		for i := 0; i < int(month.Start(nil).Weekday()); i++ {
			b.WriteString(`<span></span>`)
		}
		for _, m := range data.Markers {
			classes := []string{"day"}
			if m.Date == data.Selected {
				classes = append(classes, "selected")
			}
			if m.Date == data.Today {
				classes = append(classes, "today")
			}
			if m.HasTasks {
				classes = append(classes, "has-tasks")
			}
			if m.HasReminders {
				classes = append(classes, "has-reminders")
			}
			fmt.Fprintf(&b, `<a class="%s" href="/?date=%s">%d</a>`, strings.Join(classes, " "), m.Date, m.Date.Day)
		}
		b.WriteString(`</div></section>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		return dayPanel(data).Render(ctx, w)
	})
}

func dayPanel(data PlannerPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		day := data.Day
		date := day.Date.String()

		var b strings.Builder
		fmt.Fprintf(&b, `<section class="day"><h2>%s</h2>`, date)
		fmt.Fprintf(&b, `<div class="progress"><div style="width:%.0f%%"></div></div><p>%d of %d tasks done</p>`,
			day.Progress.Percent, day.Progress.Completed, day.Progress.Total)

		b.WriteString(`<h3>Tasks</h3><ul class="notes">`)
		for _, n := range day.Notes {
			fmt.Fprintf(&b, `<li class="priority-%s%s"><input type="checkbox" data-toggle="/api/notes/%s/toggle"%s> %s</li>`,
				n.Priority, doneIf(n.Completed), templ.EscapeString(n.ID), checkedIf(n.Completed), templ.EscapeString(n.Text))
		}
		if len(day.Notes) == 0 {
			b.WriteString(`<li class="empty">No tasks for this day</li>`)
		}
		fmt.Fprintf(&b, `</ul><form data-endpoint="/api/notes" data-method="POST"><input type="hidden" name="date" value="%s"><input name="text" placeholder="Add a task" required><select name="priority"><option value="normal">Normal</option><option value="high">High</option><option value="medium">Medium</option><option value="low">Low</option></select><button type="submit">Add</button></form>`, date)

		b.WriteString(`<h3>Reminders</h3><ul class="reminders">`)
		for _, r := range day.Reminders {
			fmt.Fprintf(&b, `<li class="category-%s%s"><input type="checkbox" data-toggle="/api/reminders/%s/toggle"%s> <time>%s</time> %s</li>`,
				r.Category, doneIf(r.Completed), templ.EscapeString(r.ID), checkedIf(r.Completed), templ.EscapeString(r.Time), templ.EscapeString(r.Text))
		}
		if len(day.Reminders) == 0 {
			b.WriteString(`<li class="empty">No reminders for this day</li>`)
		}
		fmt.Fprintf(&b, `</ul><form data-endpoint="/api/reminders" data-method="POST"><input type="hidden" name="date" value="%s"><input name="text" placeholder="Add a reminder" required><input type="time" name="time" value="%s"><select name="category"><option value="personal">Personal</option><option value="work">Work</option><option value="fitness">Fitness</option></select><button type="submit">Add</button></form></section>`,
			date, models.DefaultReminderTime)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func focus(data PlannerPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<section class="focus"><h2>Focus for %s</h2>`, data.Selected)
		if data.Settings != nil && data.Settings.Goals != "" {
			fmt.Fprintf(&b, `<p class="goals">%s</p>`, templ.EscapeString(data.Settings.Goals))
		}
		b.WriteString(`<ol>`)
		for _, n := range data.Focus {
			fmt.Fprintf(&b, `<li class="priority-%s"><input type="checkbox" data-toggle="/api/notes/%s/toggle"> %s</li>`,
				n.Priority, templ.EscapeString(n.ID), templ.EscapeString(n.Text))
		}
		if len(data.Focus) == 0 {
			b.WriteString(`<li class="empty">Nothing left to do</li>`)
		}
		b.WriteString(`</ol></section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func activeIf(cond bool) string {
	if cond {
		return ` class="active"`
	}
	return ""
}

func checkedIf(cond bool) string {
	if cond {
		return ` checked`
	}
	return ""
}

func doneIf(cond bool) string {
	if cond {
		return ` done`
	}
	return ""
}

const styles = `<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f7f7f8;color:#1f2933}
nav{display:flex;gap:1rem;align-items:center;padding:.75rem 1.5rem;background:#fff;border-bottom:1px solid #e4e7eb}
nav .brand{font-weight:600;margin-right:auto}nav a.active{font-weight:600}
main{max-width:960px;margin:1.5rem auto;padding:0 1rem}
.card,.calendar,.day,.focus{background:#fff;border-radius:8px;padding:1rem 1.5rem;margin-bottom:1rem}
.grid{display:grid;grid-template-columns:repeat(7,1fr);gap:.25rem;text-align:center}
.day{display:block}.grid .day{padding:.5rem;border-radius:6px;text-decoration:none;color:inherit}
.grid .selected{background:#1f2933;color:#fff}.grid .today{outline:1px solid #1f2933}
.has-tasks{border-bottom:3px solid #3b82f6}.has-reminders{box-shadow:inset 0 -3px #f59e0b}
.progress{height:6px;background:#e4e7eb;border-radius:3px}.progress div{height:100%;background:#10b981;border-radius:3px}
.done{text-decoration:line-through;opacity:.6}.priority-high{color:#b91c1c}.empty{color:#9aa5b1}
#toast{position:fixed;bottom:1rem;right:1rem}#toast .destructive{background:#b91c1c;color:#fff}
#toast div{background:#1f2933;color:#fff;padding:.75rem 1rem;border-radius:6px}
</style>`

const script = `<script>
function toast(n){if(!n)return;var t=document.getElementById('toast');var d=document.createElement('div');
d.className=n.variant||'default';d.textContent=n.title+(n.description?': '+n.description:'');t.appendChild(d);
setTimeout(function(){d.remove()},4000)}
async function send(url,method,body){var r=await fetch(url,{method:method,credentials:'same-origin',
headers:{'Content-Type':'application/json'},body:body?JSON.stringify(body):undefined});
var j={};try{j=await r.json()}catch(e){}toast(j.notification);if(r.ok)setTimeout(function(){location.reload()},400)}
document.querySelectorAll('form[data-endpoint]').forEach(function(f){f.addEventListener('submit',function(e){
e.preventDefault();send(f.dataset.endpoint,f.dataset.method,Object.fromEntries(new FormData(f)))})});
document.querySelectorAll('[data-toggle]').forEach(function(c){c.addEventListener('change',function(){send(c.dataset.toggle,'POST')})});
document.querySelectorAll('[data-action=logout]').forEach(function(b){b.addEventListener('click',function(){
fetch('/api/auth/logout',{method:'POST',credentials:'same-origin'}).then(function(){location.href='/'})})});
function onGoogleCredential(r){fetch('/api/auth/login',{method:'POST',credentials:'same-origin',
headers:{'Content-Type':'application/json'},body:JSON.stringify({id_token:r.credential})}).then(function(){location.reload()})}
</script>`

package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"personal-planner/dayindex"
	"personal-planner/models"
	"personal-planner/storage"
)

var (
	noteAdded        = success("Success", "Task added successfully")
	noteAddFailed    = failure(KindRemoteWrite, "Error", "Failed to add task. Please try again.")
	noteToggled      = success("Success", "Task updated successfully")
	noteToggleFailed = failure(KindRemoteWrite, "Error", "Failed to update task. Please try again.")

	reminderAdded        = success("Success", "Reminder added successfully")
	reminderAddFailed    = failure(KindRemoteWrite, "Error", "Failed to add reminder. Please try again.")
	reminderToggled      = success("Success", "Reminder updated successfully")
	reminderToggleFailed = failure(KindRemoteWrite, "Error", "Failed to update reminder. Please try again.")

	settingsSaved      = success("Welcome to your Personal Planner!", "Your preferences have been saved successfully.")
	settingsSaveFailed = failure(KindRemoteWrite, "Error saving preferences", "Please try again later.")
)

// Outcome is what a mutation hands back: the notification it raised and,
// on success, the record as stored remotely.
type Outcome[T any] struct {
	Notification Notification
	Record       *T
}

func (o Outcome[T]) Failed() bool {
	return o.Notification.Failed()
}

// NoteDraft is a task as entered by the user
type NoteDraft struct {
	Text     string
	Priority models.Priority
	Date     models.DateKey
}

// ReminderDraft is a reminder as entered by the user
type ReminderDraft struct {
	Text     string
	Time     string
	Category models.Category
	Date     models.DateKey
}

// SettingsDraft is the onboarding form
type SettingsDraft struct {
	Name    string
	Goals   string
	Routine string
}

// Planner holds one user's cached notes, reminders and settings and runs
// every mutation against the remote store before patching the cache.
// The cache is only modified after a write succeeds. The lock is never held
// across a remote call, so concurrent mutations patch in completion order.
type Planner struct {
	userID   string
	adapter  *StoreAdapter
	notifier Notifier
	logger   *slog.Logger
	loc      *time.Location
	now      func() time.Time

	loadMu sync.Mutex

	mu        sync.RWMutex
	notes     *dayindex.Index[models.Note]
	reminders *dayindex.Index[models.Reminder]
	settings  *models.UserSettings
	loaded    bool
	inflight  int
}

func newPlanner(userID string, adapter *StoreAdapter, notifier Notifier, loc *time.Location, now func() time.Time, logger *slog.Logger) *Planner {
	p := &Planner{
		userID:   userID,
		adapter:  adapter,
		notifier: notifier,
		logger:   logger.With("user_id", userID),
		loc:      loc,
		now:      now,
	}
	p.notes = dayindex.New(func(n models.Note) models.DateKey {
		return models.DateKeyOf(n.Timestamp, p.loc)
	})
	p.reminders = dayindex.New(func(r models.Reminder) models.DateKey {
		return r.Date
	})
	return p
}

func (p *Planner) UserID() string {
	return p.userID
}

// Today is the current day in the planner's time zone
func (p *Planner) Today() models.DateKey {
	return models.DateKeyOf(p.now(), p.loc)
}

// Loading reports whether a load or mutation is in flight
func (p *Planner) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inflight > 0
}

func (p *Planner) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// ShowOnboarding is true until the user has saved settings
func (p *Planner) ShowOnboarding() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings == nil
}

// Settings returns a copy of the user's settings, or nil
func (p *Planner) Settings() *models.UserSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.settings == nil {
		return nil
	}
	s := *p.settings
	return &s
}

// Load fetches settings, notes and reminders and rebuilds the indexes.
// Read failures are logged and degrade to empty state. Only a missing
// session produces a failed notification.
func (p *Planner) Load(ctx context.Context) Notification {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	return p.load(ctx)
}

// ensureLoaded loads the planner once; concurrent callers wait for the first load
func (p *Planner) ensureLoaded(ctx context.Context) Notification {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	if p.Loaded() {
		return Notification{}
	}
	return p.load(ctx)
}

func (p *Planner) load(ctx context.Context) Notification {
	done := p.begin()
	defer done()

	if _, n, ok := p.resolveUser(ctx); !ok {
		return n
	}

	settings, err := p.adapter.FetchSettings(ctx, p.userID)
	if err != nil {
		p.logger.Warn("Failed to load settings", "error", err)
		settings = nil
	}

	notes, err := p.adapter.FetchNotes(ctx, p.userID)
	if err != nil {
		p.logger.Warn("Failed to load notes", "error", err)
		notes = nil
	}

	reminders, err := p.adapter.FetchReminders(ctx, p.userID)
	if err != nil {
		p.logger.Warn("Failed to load reminders", "error", err)
		reminders = nil
	}

	p.mu.Lock()
	p.settings = settings
	p.notes.Rebuild(notes)
	p.reminders.Rebuild(reminders)
	p.loaded = true
	p.mu.Unlock()

	p.logger.Debug("Planner loaded", "notes", len(notes), "reminders", len(reminders))
	return Notification{}
}

// AddNote creates a task on draft.Date (today when zero). The stored
// timestamp is the current clock time on that day.
func (p *Planner) AddNote(ctx context.Context, draft NoteDraft) Outcome[models.Note] {
	done := p.begin()
	defer done()

	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return failed[models.Note](p.emit(ctx, invalid("Task text is required.")))
	}
	if draft.Priority == "" {
		draft.Priority = models.PriorityNormal
	}
	if !draft.Priority.Valid() {
		return failed[models.Note](p.emit(ctx, invalid("Unknown priority.")))
	}

	user, n, ok := p.resolveUser(ctx)
	if !ok {
		return failed[models.Note](n)
	}

	day := draft.Date
	if day.IsZero() {
		day = p.Today()
	}

	stored, err := p.adapter.InsertNote(ctx, user.ID, models.Note{
		Text:      text,
		Completed: false,
		Timestamp: day.At(p.now(), p.loc),
		Priority:  draft.Priority,
		Recurring: false,
	})
	if err != nil {
		p.logger.Error("Failed to add note", "error", err)
		return failed[models.Note](p.emit(ctx, noteAddFailed))
	}

	p.mu.Lock()
	p.notes.Patch(*stored)
	p.mu.Unlock()

	return Outcome[models.Note]{Notification: p.emit(ctx, noteAdded), Record: stored}
}

// ToggleNote flips a task's completion state
func (p *Planner) ToggleNote(ctx context.Context, noteID string) Outcome[models.Note] {
	done := p.begin()
	defer done()

	if strings.TrimSpace(noteID) == "" {
		return failed[models.Note](p.emit(ctx, invalid("Task id is required.")))
	}

	user, n, ok := p.resolveUser(ctx)
	if !ok {
		return failed[models.Note](n)
	}

	p.mu.RLock()
	current, found := p.notes.Find(noteID)
	p.mu.RUnlock()
	if !found {
		p.logger.Warn("Toggle of unknown note", "note_id", noteID, "error", ErrNoteNotFound)
		return failed[models.Note](p.emit(ctx, notFound(noteToggleFailed)))
	}

	completed := !current.Completed
	stored, err := p.adapter.UpdateNote(ctx, user.ID, noteID, models.NotePatch{Completed: &completed})
	if err != nil {
		p.logger.Error("Failed to update note", "note_id", noteID, "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			return failed[models.Note](p.emit(ctx, notFound(noteToggleFailed)))
		}
		return failed[models.Note](p.emit(ctx, noteToggleFailed))
	}

	p.mu.Lock()
	if p.notes.Mutate(func(n models.Note) bool { return n.ID == noteID }, func(models.Note) models.Note { return *stored }) == 0 {
		p.notes.Patch(*stored)
	}
	p.mu.Unlock()

	return Outcome[models.Note]{Notification: p.emit(ctx, noteToggled), Record: stored}
}

// AddReminder creates a reminder on draft.Date (today when zero)
func (p *Planner) AddReminder(ctx context.Context, draft ReminderDraft) Outcome[models.Reminder] {
	done := p.begin()
	defer done()

	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return failed[models.Reminder](p.emit(ctx, invalid("Reminder text is required.")))
	}
	if draft.Time == "" {
		draft.Time = models.DefaultReminderTime
	}
	if !models.ValidClock(draft.Time) {
		return failed[models.Reminder](p.emit(ctx, invalid("Time must be HH:MM.")))
	}
	if draft.Category == "" {
		draft.Category = models.CategoryPersonal
	}
	if !draft.Category.Valid() {
		return failed[models.Reminder](p.emit(ctx, invalid("Unknown category.")))
	}

	user, n, ok := p.resolveUser(ctx)
	if !ok {
		return failed[models.Reminder](n)
	}

	day := draft.Date
	if day.IsZero() {
		day = p.Today()
	}

	stored, err := p.adapter.InsertReminder(ctx, user.ID, models.Reminder{
		Text:      text,
		Time:      draft.Time,
		Category:  draft.Category,
		Completed: false,
		Date:      day,
		Timestamp: p.now().UTC(),
	})
	if err != nil {
		p.logger.Error("Failed to add reminder", "error", err)
		return failed[models.Reminder](p.emit(ctx, reminderAddFailed))
	}

	p.mu.Lock()
	p.reminders.Patch(*stored)
	p.mu.Unlock()

	return Outcome[models.Reminder]{Notification: p.emit(ctx, reminderAdded), Record: stored}
}

// ToggleReminder flips a reminder's completion state
func (p *Planner) ToggleReminder(ctx context.Context, reminderID string) Outcome[models.Reminder] {
	done := p.begin()
	defer done()

	if strings.TrimSpace(reminderID) == "" {
		return failed[models.Reminder](p.emit(ctx, invalid("Reminder id is required.")))
	}

	user, n, ok := p.resolveUser(ctx)
	if !ok {
		return failed[models.Reminder](n)
	}

	p.mu.RLock()
	current, found := p.reminders.Find(reminderID)
	p.mu.RUnlock()
	if !found {
		p.logger.Warn("Toggle of unknown reminder", "reminder_id", reminderID, "error", ErrReminderNotFound)
		return failed[models.Reminder](p.emit(ctx, notFound(reminderToggleFailed)))
	}

	completed := !current.Completed
	stored, err := p.adapter.UpdateReminder(ctx, user.ID, reminderID, models.ReminderPatch{Completed: &completed})
	if err != nil {
		p.logger.Error("Failed to update reminder", "reminder_id", reminderID, "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			return failed[models.Reminder](p.emit(ctx, notFound(reminderToggleFailed)))
		}
		return failed[models.Reminder](p.emit(ctx, reminderToggleFailed))
	}

	p.mu.Lock()
	p.reminders.Patch(*stored)
	p.mu.Unlock()

	return Outcome[models.Reminder]{Notification: p.emit(ctx, reminderToggled), Record: stored}
}

// SaveSettings upserts the onboarding profile. On success the onboarding gate closes.
func (p *Planner) SaveSettings(ctx context.Context, draft SettingsDraft) Outcome[models.UserSettings] {
	done := p.begin()
	defer done()

	draft.Name = strings.TrimSpace(draft.Name)
	draft.Goals = strings.TrimSpace(draft.Goals)
	draft.Routine = strings.TrimSpace(draft.Routine)
	if draft.Name == "" || draft.Goals == "" || draft.Routine == "" {
		return failed[models.UserSettings](p.emit(ctx, invalid("Please fill in all fields.")))
	}

	user, n, ok := p.resolveUser(ctx)
	if !ok {
		return failed[models.UserSettings](n)
	}

	stored, err := p.adapter.UpsertSettings(ctx, user.ID, models.UserSettings{
		Name:    draft.Name,
		Goals:   draft.Goals,
		Routine: draft.Routine,
	})
	if err != nil {
		p.logger.Error("Failed to save settings", "error", err)
		return failed[models.UserSettings](p.emit(ctx, settingsSaveFailed))
	}

	p.mu.Lock()
	s := *stored
	p.settings = &s
	p.mu.Unlock()

	return Outcome[models.UserSettings]{Notification: p.emit(ctx, settingsSaved), Record: stored}
}

// resolveUser checks that the context carries this planner's user
func (p *Planner) resolveUser(ctx context.Context) (*models.User, Notification, bool) {
	user := p.adapter.CurrentUser(ctx)
	if user == nil {
		p.logger.Warn("Operation without session", "error", ErrNoSession)
		return nil, p.emit(ctx, authRequired), false
	}
	if user.ID != p.userID {
		p.logger.Warn("Session user does not own planner", "session_user", user.ID, "error", ErrUnauthorized)
		return nil, p.emit(ctx, authRequired), false
	}
	return user, Notification{}, true
}

func (p *Planner) emit(ctx context.Context, n Notification) Notification {
	if p.notifier != nil {
		p.notifier.Notify(ctx, p.userID, n)
	}
	return n
}

// begin marks an operation in flight and returns the func that ends it
func (p *Planner) begin() func() {
	p.mu.Lock()
	p.inflight++
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.inflight--
		p.mu.Unlock()
	}
}

func failed[T any](n Notification) Outcome[T] {
	return Outcome[T]{Notification: n}
}

func invalid(description string) Notification {
	return failure(KindValidation, "Error", description)
}

func notFound(n Notification) Notification {
	n.Kind = KindNotFound
	return n
}

// ==================== VIEWS ====================

// Progress summarises a day's task completion
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// DayView is everything shown for one selected day
type DayView struct {
	Date      models.DateKey    `json:"date"`
	Notes     []models.Note     `json:"notes"`
	Reminders []models.Reminder `json:"reminders"`
	Progress  Progress          `json:"progress"`
}

// DayMarker flags a calendar day that has tasks or reminders
type DayMarker struct {
	Date         models.DateKey `json:"date"`
	HasTasks     bool           `json:"has_tasks"`
	HasReminders bool           `json:"has_reminders"`
}

// DayView returns the notes and reminders on key with task progress
func (p *Planner) DayView(key models.DateKey) DayView {
	p.mu.RLock()
	notes := p.notes.Day(key)
	reminders := p.reminders.Day(key)
	p.mu.RUnlock()

	progress := Progress{Total: len(notes)}
	for _, n := range notes {
		if n.Completed {
			progress.Completed++
		}
	}
	if progress.Total > 0 {
		progress.Percent = float64(progress.Completed) / float64(progress.Total) * 100
	}

	return DayView{Date: key, Notes: notes, Reminders: reminders, Progress: progress}
}

// Markers returns one marker per day of month's calendar month
func (p *Planner) Markers(month models.DateKey) []DayMarker {
	days := month.DaysInMonth()
	markers := make([]DayMarker, 0, len(days))

	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, d := range days {
		markers = append(markers, DayMarker{
			Date:         d,
			HasTasks:     p.notes.Has(d),
			HasReminders: p.reminders.Has(d),
		})
	}
	return markers
}

// Focus returns the open tasks on key, highest priority first
func (p *Planner) Focus(key models.DateKey) []models.Note {
	p.mu.RLock()
	notes := p.notes.Day(key)
	p.mu.RUnlock()

	open := notes[:0]
	for _, n := range notes {
		if !n.Completed {
			open = append(open, n)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].Priority.Rank() < open[j].Priority.Rank()
	})
	return open
}

// AllReminders returns every cached reminder, day by day
func (p *Planner) AllReminders() []models.Reminder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []models.Reminder
	for _, k := range p.reminders.Keys() {
		out = append(out, p.reminders.Day(k)...)
	}
	return out
}

package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"personal-planner/storage"
)

// PlannerService keeps one Planner per signed-in user
type PlannerService struct {
	adapter  *StoreAdapter
	notifier Notifier
	logger   *slog.Logger
	loc      *time.Location
	now      func() time.Time

	mu       sync.Mutex
	planners map[string]*Planner
	lastUsed map[string]time.Time
}

// PlannerIdleTTL is how long an unused planner stays cached
const PlannerIdleTTL = 6 * time.Hour

// NewPlannerService creates a planner registry over store. loc decides which
// calendar day an instant belongs to; nil means UTC.
func NewPlannerService(store storage.Provider, notifier Notifier, loc *time.Location, logger *slog.Logger) *PlannerService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &PlannerService{
		adapter:  NewStoreAdapter(store),
		notifier: notifier,
		logger:   logger,
		loc:      loc,
		now:      time.Now,
		planners: make(map[string]*Planner),
		lastUsed: make(map[string]time.Time),
	}
}

// Open returns the current user's planner, loading it on first use.
// Without a session it returns nil and the auth notification.
func (s *PlannerService) Open(ctx context.Context) (*Planner, Notification) {
	user := s.adapter.CurrentUser(ctx)
	if user == nil {
		s.notifier.Notify(ctx, "", authRequired)
		return nil, authRequired
	}

	s.mu.Lock()
	p, ok := s.planners[user.ID]
	if !ok {
		p = newPlanner(user.ID, s.adapter, s.notifier, s.loc, s.now, s.logger)
		s.planners[user.ID] = p
	}
	s.lastUsed[user.ID] = s.now()
	s.mu.Unlock()

	if n := p.ensureLoaded(ctx); n.Failed() {
		return nil, n
	}
	return p, Notification{}
}

// Reload refetches the current user's planner from the store
func (s *PlannerService) Reload(ctx context.Context) (*Planner, Notification) {
	p, n := s.Open(ctx)
	if p == nil {
		return nil, n
	}
	if n := p.Load(ctx); n.Failed() {
		return nil, n
	}
	return p, Notification{}
}

// Forget drops a user's cached planner, e.g. on logout
func (s *PlannerService) Forget(userID string) {
	s.mu.Lock()
	delete(s.planners, userID)
	delete(s.lastUsed, userID)
	s.mu.Unlock()
}

// DropIdle forgets planners not opened within maxIdle and reports how many
// were dropped. Users without a logout, such as Bearer clients, leave only
// this way.
func (s *PlannerService) DropIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for userID, used := range s.lastUsed {
		if used.Before(cutoff) {
			delete(s.planners, userID)
			delete(s.lastUsed, userID)
			dropped++
		}
	}
	return dropped
}

// Location is the time zone used for day keys
func (s *PlannerService) Location() *time.Location {
	return s.loc
}

// Today is the current day in the service's time zone
func (s *PlannerService) Today() time.Time {
	return s.now().In(s.loc)
}

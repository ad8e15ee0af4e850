package session

import (
	"log/slog"
	"sync"
	"time"

	"personal-planner/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// DefaultTTL is how long a browser session stays valid
const DefaultTTL = 30 * 24 * time.Hour

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	ttl      time.Duration
	now      func() time.Time
	cron     *cron.Cron
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Create(user *models.User, accessToken, refreshToken string, tokenExpiry time.Time) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &models.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Picture:      user.Picture,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenExpiry:  tokenExpiry,
		ExpiresAt:    now.Add(s.ttl),
		CreatedAt:    now,
		LastUsedAt:   now,
	}

	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns nil, nil for unknown or expired sessions
func (s *Store) Get(sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[sessionID]
	if !exists {
		return nil, nil
	}

	if s.now().After(sess.ExpiresAt) {
		return nil, nil
	}

	return sess, nil
}

// Touch records activity on a session
func (s *Store) Touch(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		sess.LastUsedAt = s.now()
	}
}

func (s *Store) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// CleanupExpired drops expired sessions and reports how many were removed
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine sweeps expired sessions every hour until
// StopCleanupRoutine. Each job runs after the sweep.
func (s *Store) StartCleanupRoutine(logger *slog.Logger, jobs ...func()) error {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if n := s.CleanupExpired(); n > 0 {
			logger.Info("expired sessions removed", "count", n)
		}
		for _, job := range jobs {
			job()
		}
	}); err != nil {
		return err
	}
	c.Start()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()
	return nil
}

func (s *Store) StopCleanupRoutine() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

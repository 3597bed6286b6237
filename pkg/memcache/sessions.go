// pkg/memcache/sessions.go
package mem

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"meetspot/internal/models/domain_models"
)

type SessionStore interface {
	Create() *domain_models.Session

	// Get returns the session if it exists and has not expired.
	Get(id string) (*domain_models.Session, bool)

	// Save refreshes the session's expiry alongside its content.
	Save(s *domain_models.Session)

	Delete(id string)
}

type sessionEntry struct {
	session   *domain_models.Session
	expiresAt time.Time
}

type Sessions struct {
	mu   sync.RWMutex
	data map[string]sessionEntry
	ttl  time.Duration
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Sessions{
		data: make(map[string]sessionEntry),
		ttl:  ttl,
	}
}

func (s *Sessions) Create() *domain_models.Session {
	now := time.Now()
	session := &domain_models.Session{
		ID:        uuid.New().String(),
		State:     domain_models.StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Save(session)
	return session
}

func (s *Sessions) Get(id string) (*domain_models.Session, bool) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.Delete(id) // cleanup expired
		return nil, false
	}
	return e.session, true
}

func (s *Sessions) Save(session *domain_models.Session) {
	session.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

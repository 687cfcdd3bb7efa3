package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session associates an opaque token with an authenticated user.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
}

// Store keeps sessions in process memory. Sessions expire on inactivity: a
// successful lookup pushes the deadline forward by the TTL. Nothing survives
// a restart.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]Session
	ttl         time.Duration
	sweepPeriod time.Duration
	now         func() time.Time
}

func NewStore(ttl, sweepPeriod time.Duration) *Store {
	return &Store{
		sessions:    make(map[string]Session),
		ttl:         ttl,
		sweepPeriod: sweepPeriod,
		now:         time.Now,
	}
}

func (s *Store) Create(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get resolves a session id. An expired session is evicted and reported as a
// miss; a hit refreshes the expiry.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return Session{}, false
	}
	sess.ExpiresAt = s.now().Add(s.ttl)
	s.sessions[id] = sess
	return sess, true
}

func (s *Store) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Run sweeps expired sessions periodically until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}

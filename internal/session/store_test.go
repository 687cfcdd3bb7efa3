package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore(time.Hour, 24*time.Hour)

	sess := s.Create(42)
	require.NotEmpty(t, sess.ID)

	got, ok := s.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, int64(42), got.UserID)

	_, ok = s.Get("no-such-session")
	assert.False(t, ok)
}

func TestGetRefreshesExpiry(t *testing.T) {
	s := NewStore(time.Hour, 24*time.Hour)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess := s.Create(1)

	// 50 minutes later the session is still active, and the lookup pushes
	// the deadline another hour out.
	now = now.Add(50 * time.Minute)
	_, ok := s.Get(sess.ID)
	require.True(t, ok)

	now = now.Add(50 * time.Minute)
	_, ok = s.Get(sess.ID)
	assert.True(t, ok, "activity should have kept the session alive")
}

func TestExpiredSessionIsEvictedOnGet(t *testing.T) {
	s := NewStore(time.Hour, 24*time.Hour)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess := s.Create(1)

	now = now.Add(2 * time.Hour)
	_, ok := s.Get(sess.ID)
	assert.False(t, ok)

	now = now.Add(-2 * time.Hour)
	_, ok = s.Get(sess.ID)
	assert.False(t, ok, "expired session must be gone even if the clock rewinds")
}

func TestSweepEvictsStaleSessions(t *testing.T) {
	s := NewStore(time.Hour, 24*time.Hour)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	stale := s.Create(1)
	now = now.Add(30 * time.Minute)
	fresh := s.Create(2)

	now = now.Add(45 * time.Minute)
	s.sweep()

	_, ok := s.sessions[stale.ID]
	assert.False(t, ok)
	_, ok = s.sessions[fresh.ID]
	assert.True(t, ok)
}

func TestDestroy(t *testing.T) {
	s := NewStore(time.Hour, 24*time.Hour)

	sess := s.Create(1)
	s.Destroy(sess.ID)

	_, ok := s.Get(sess.ID)
	assert.False(t, ok)
}

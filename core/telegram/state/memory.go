package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/txbot/core/logger"
)

// Manager stores one session value per user. All methods are safe for
// concurrent use and return copies of the stored value.
type Manager[T any] struct {
	mu       sync.Mutex
	sessions map[int64]entry[T]
	ttl      time.Duration
	now      func() time.Time
}

// NewManager constructs an in-memory Manager.
func NewManager[T any](opts Options) *Manager[T] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager[T]{
		sessions: make(map[int64]entry[T]),
		ttl:      opts.TTL,
		now:      now,
	}
}

// Begin creates or replaces the session for userID.
func (m *Manager[T]) Begin(userID int64, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = entry[T]{value: v, startedAt: m.now()}
}

// Get returns the session for userID. Expired sessions read as absent.
func (m *Manager[T]) Get(userID int64) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(userID)
	return e.value, ok
}

// Advance applies fn to the stored session. If fn fails the stored value is
// left untouched.
func (m *Manager[T]) Advance(userID int64, fn func(*T) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(userID)
	if !ok {
		return ErrNoSession
	}
	next := e.value
	if err := fn(&next); err != nil {
		return err
	}
	e.value = next
	m.sessions[userID] = e
	return nil
}

// Take removes and returns the session when accept approves it. A nil accept
// takes any session.
func (m *Manager[T]) Take(userID int64, accept func(T) bool) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(userID)
	if !ok || (accept != nil && !accept(e.value)) {
		var zero T
		return zero, false
	}
	delete(m.sessions, userID)
	return e.value, true
}

// End removes the session for userID and reports whether one existed.
func (m *Manager[T]) End(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.lookup(userID)
	delete(m.sessions, userID)
	return ok
}

// InProgress reports whether userID has a live session.
func (m *Manager[T]) InProgress(userID int64) bool {
	_, ok := m.Get(userID)
	return ok
}

// Len returns the number of stored sessions, expired ones included.
func (m *Manager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (m *Manager[T]) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, e := range m.sessions {
		if m.expired(e, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager[T]) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.Debug(ctx, "tg", "session.sweep",
					slog.Int("count", n),
					slog.Int("remaining", m.Len()),
				)
			}
		}
	}
}

// lookup must be called with mu held.
func (m *Manager[T]) lookup(userID int64) (entry[T], bool) {
	e, ok := m.sessions[userID]
	if !ok {
		return e, false
	}
	if m.expired(e, m.now()) {
		delete(m.sessions, userID)
		return entry[T]{}, false
	}
	return e, true
}

func (m *Manager[T]) expired(e entry[T], now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.startedAt) >= m.ttl
}

// apps/go-solver/internal/store/memory.go
//
// In-memory registry of live solver sessions for the HTTP API.
//
// Characteristics:
//   - Sessions are keyed by a random UUID assigned on Create.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; old entries are dropped by Prune.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines where live sessions are kept.
type Store interface {
	// Create registers s and returns its new ID.
	Create(ctx context.Context, s *session.Session) (string, error)

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete forgets a session. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error
}

type entry struct {
	s       *session.Session
	created time.Time
}

// Memory is an in-memory map-based Store implementation.
type Memory struct {
	mu       sync.RWMutex      // guards sessions
	sessions map[string]entry // keyed by session ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{sessions: make(map[string]entry), now: time.Now}
}

// Create implements Store.
func (m *Memory) Create(ctx context.Context, s *session.Session) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = entry{s: s, created: m.now()}
	return id, nil
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e.s, nil
	}
	return nil, ErrNotFound
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune drops sessions created more than maxAge ago and returns how many
// were removed.
func (m *Memory) Prune(maxAge time.Duration) int {
	cutoff := m.now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.created.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

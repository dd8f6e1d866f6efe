// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Painted canvases are deliberately not durable: they live only as long as
// the process does.
//
// Characteristics:
//   - Stores *session.Session objects keyed by owner.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing owners on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/pixelart/apps/go-server/internal/session"
)

var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for canvas sessions.
type Store interface {
	// Save persists or replaces the session of s.Owner.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves the session of owner.
	// Returns ErrNotFound if the owner has none.
	Get(ctx context.Context, owner string) (*session.Session, error)

	// Delete discards the session of owner. Missing owners are not an error.
	Delete(ctx context.Context, owner string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions map
	sessions map[string]*session.Session // keyed by Session.Owner
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Owner] = s
	return nil
}

func (m *memory) Get(ctx context.Context, owner string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[owner]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, owner)
	return nil
}

// internal/store/memory.go
//
// In-memory session store. Each browser session owns exactly one game engine.
//
// Characteristics:
//   - Sessions keyed by session ID in a map.
//   - The engine itself is unlocked, so every mutation goes through Update (exclusive)
//     and every read through View (shared). One event completes before the next is seen.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/endgame/internal/game"
)

// ErrNotFound is returned when a session has no game yet.
var ErrNotFound = errors.New("store: session not found")

// Session is a player's current game and the bookkeeping around it.
type Session struct {
	ID       string       // Session identifier from the session token.
	Mode     string       // "random" or "daily".
	Engine   *game.Engine // Current round.
	Recorded string       // ID of the last round written to the ledger.
}

// Store defines the session persistence interface.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Update runs fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*Session) error) error

	// View runs fn with shared access to the session. fn must not mutate it.
	View(ctx context.Context, id string, fn func(*Session) error) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions and everything they point to
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save adds or replaces the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

func (m *memory) View(ctx context.Context, id string, fn func(*Session) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

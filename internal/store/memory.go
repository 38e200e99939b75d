// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for live game sessions; durable history lives in SQLite.
//
// Characteristics:
//   - Stores *game.Game values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get and Update hand out copies, so callers never share a game.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/dicegrid/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a copy of a game by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update applies fn to a copy of the game and stores the result if fn
	// succeeds. The game is locked for the duration of fn.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) (*game.Game, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return cur.Clone(), err
	}
	m.games[id] = next
	return next.Clone(), nil
}

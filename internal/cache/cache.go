// Package cache keeps the last snapshot seen for each entity kind so a
// service can render from it without opening its own subscription.
//
// Cached snapshots are last-known-good values: they may lag the store until
// the next subscription push overwrites them.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rpggio/caredesk/internal/docstore"
)

// DefaultCapacity fits every collection the dashboard uses.
const DefaultCapacity = 16

// ErrUndeclared indicates a scope read a kind it did not declare.
var ErrUndeclared = errors.New("cache kind not declared by scope")

// Loader reads a fresh snapshot when the cache has none.
type Loader func(ctx context.Context) (docstore.Snapshot, error)

// Manager stores one snapshot per kind.
type Manager struct {
	mu      sync.Mutex
	entries *lru.Cache[string, docstore.Snapshot]
	// floors holds the time each kind was last dropped. Snapshots taken
	// before it are stale and never cached.
	floors map[string]time.Time
	logger *slog.Logger
	now    func() time.Time
}

// NewManager creates a Manager holding at most capacity kinds.
func NewManager(capacity int, logger *slog.Logger) (*Manager, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := lru.New[string, docstore.Snapshot](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot cache: %w", err)
	}
	return &Manager{
		entries: entries,
		floors:  make(map[string]time.Time),
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Set stores snap as the latest snapshot of kind. An older snapshot never
// replaces a newer one, and a snapshot taken before the last Drop of kind is
// ignored.
func (m *Manager) Set(kind string, snap docstore.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.At.Before(m.floors[kind]) {
		return
	}
	if current, ok := m.entries.Peek(kind); ok && snap.At.Before(current.At) {
		return
	}
	m.entries.Add(kind, snap)
}

// Get returns the cached snapshot of kind.
func (m *Manager) Get(kind string) (docstore.Snapshot, bool) {
	return m.entries.Get(kind)
}

// Drop forgets the snapshot of kind. A subscription push still in flight
// from before the drop cannot bring the old snapshot back.
func (m *Manager) Drop(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floors[kind] = m.now()
	m.entries.Remove(kind)
}

// Load returns the cached snapshot of kind, reading and caching it through
// load when absent.
func (m *Manager) Load(ctx context.Context, kind string, load Loader) (docstore.Snapshot, error) {
	if snap, ok := m.Get(kind); ok {
		return snap, nil
	}
	snap, err := load(ctx)
	if err != nil {
		return docstore.Snapshot{}, err
	}
	m.Set(kind, snap)
	return snap, nil
}

// Scope restricts reads to the kinds declared up front.
func (m *Manager) Scope(kinds ...string) *Scope {
	return &Scope{manager: m, kinds: slices.Clone(kinds)}
}

// Scope is the set of cached kinds one service reads.
type Scope struct {
	manager *Manager
	kinds   []string
}

// Kinds lists the declared kinds.
func (s *Scope) Kinds() []string {
	return slices.Clone(s.kinds)
}

// Load reads kind through the manager.
func (s *Scope) Load(ctx context.Context, kind string, load Loader) (docstore.Snapshot, error) {
	if !slices.Contains(s.kinds, kind) {
		return docstore.Snapshot{}, fmt.Errorf("%w: %s", ErrUndeclared, kind)
	}
	return s.manager.Load(ctx, kind, load)
}

// Drop forgets kind so the next Load reads fresh.
func (s *Scope) Drop(kind string) {
	if slices.Contains(s.kinds, kind) {
		s.manager.Drop(kind)
	}
}

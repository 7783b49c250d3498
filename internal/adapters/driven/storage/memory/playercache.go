package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// Ensure PlayerCache implements the interface.
var _ driven.PlayerCache = (*PlayerCache)(nil)

// PlayerCache is an in-memory implementation of driven.PlayerCache.
type PlayerCache struct {
	mu      sync.RWMutex
	entries map[string]playerEntry
}

type playerEntry struct {
	players   map[string]domain.RawPlayer
	fetchedAt time.Time
}

// NewPlayerCache creates a new in-memory player cache.
func NewPlayerCache() *PlayerCache {
	return &PlayerCache{
		entries: make(map[string]playerEntry),
	}
}

// Load returns a copy of the cached dictionary for sport.
func (c *PlayerCache) Load(_ context.Context, sport string) (map[string]domain.RawPlayer, time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[sport]
	if !ok {
		return nil, time.Time{}, domain.ErrNotFound
	}
	return maps.Clone(e.players), e.fetchedAt, nil
}

// Save replaces the cached dictionary for sport.
func (c *PlayerCache) Save(_ context.Context, sport string, players map[string]domain.RawPlayer, fetchedAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[sport] = playerEntry{players: maps.Clone(players), fetchedAt: fetchedAt}
	return nil
}

// Close is a no-op.
func (c *PlayerCache) Close() error {
	return nil
}

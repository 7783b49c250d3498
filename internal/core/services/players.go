package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Ensure CachedPlayers implements the interface.
var _ driven.LeagueProvider = (*CachedPlayers)(nil)

// CachedPlayers wraps a LeagueProvider and serves the player dictionary from
// a cache while the cached copy is younger than the TTL. Every other call
// passes straight through.
type CachedPlayers struct {
	driven.LeagueProvider
	cache driven.PlayerCache
	ttl   time.Duration
	now   func() time.Time
}

// NewCachedPlayers creates the caching decorator. now may be nil.
func NewCachedPlayers(provider driven.LeagueProvider, cache driven.PlayerCache, ttl time.Duration, now func() time.Time) *CachedPlayers {
	if now == nil {
		now = time.Now
	}
	return &CachedPlayers{
		LeagueProvider: provider,
		cache:          cache,
		ttl:            ttl,
		now:            now,
	}
}

// Players returns the cached dictionary when fresh, otherwise fetches it and
// refreshes the cache. Cache failures never fail the fetch.
func (c *CachedPlayers) Players(ctx context.Context, sport string) (map[string]domain.RawPlayer, error) {
	players, fetchedAt, err := c.cache.Load(ctx, sport)
	switch {
	case err == nil && c.now().Sub(fetchedAt) < c.ttl:
		logger.Debug("Using cached %s players from %s", sport, fetchedAt.Format(time.RFC3339))
		return players, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		logger.Warn("Player cache load failed: %v", err)
	}

	players, err = c.LeagueProvider.Players(ctx, sport)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Save(ctx, sport, players, c.now()); err != nil {
		logger.Warn("Player cache save failed: %v", err)
	}
	return players, nil
}

package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// LeagueProvider reads league data from the remote provider.
// Every method is a single request; implementations do not retry.
type LeagueProvider interface {
	// League returns league metadata.
	League(ctx context.Context, leagueID string) (*domain.League, error)

	// Users returns the league's members.
	Users(ctx context.Context, leagueID string) ([]domain.RawUser, error)

	// Rosters returns the league's rosters.
	Rosters(ctx context.Context, leagueID string) ([]domain.RawRoster, error)

	// Transactions returns the transactions recorded for one round.
	Transactions(ctx context.Context, leagueID string, round int) ([]domain.RawTransaction, error)

	// Players returns the full player dictionary for a sport, keyed by player id.
	Players(ctx context.Context, sport string) (map[string]domain.RawPlayer, error)
}

// PlayerCache stores the player dictionary between runs.
// It never holds publication state.
type PlayerCache interface {
	// Load returns the cached dictionary and when it was fetched.
	// Returns domain.ErrNotFound if nothing is cached for the sport.
	Load(ctx context.Context, sport string) (map[string]domain.RawPlayer, time.Time, error)

	// Save replaces the cached dictionary for a sport.
	Save(ctx context.Context, sport string, players map[string]domain.RawPlayer, fetchedAt time.Time) error

	// Close releases resources.
	Close() error
}

package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Fetcher assembles the raw bundle for one run.
type Fetcher struct {
	provider            driven.LeagueProvider
	sport               string
	roundsWindow        int
	defaultSeasonLength int
	metrics             driven.Metrics
}

// NewFetcher creates a fetcher. roundsWindow and defaultSeasonLength fall
// back to the domain defaults when not positive.
func NewFetcher(provider driven.LeagueProvider, sport string, roundsWindow, defaultSeasonLength int) *Fetcher {
	if roundsWindow <= 0 {
		roundsWindow = domain.DefaultRoundsWindow
	}
	if defaultSeasonLength <= 0 {
		defaultSeasonLength = domain.DefaultSeasonLength
	}
	return &Fetcher{
		provider:            provider,
		sport:               sport,
		roundsWindow:        roundsWindow,
		defaultSeasonLength: defaultSeasonLength,
		metrics:             driven.NopMetrics{},
	}
}

// SetMetrics sets the metrics recorder. Nil restores the no-op recorder.
func (f *Fetcher) SetMetrics(m driven.Metrics) {
	if m == nil {
		m = driven.NopMetrics{}
	}
	f.metrics = m
}

// RecentRounds returns the last window rounds of a season, newest first,
// clipped to positive round numbers.
func RecentRounds(seasonLength, window int) []int {
	rounds := make([]int, 0, window)
	for i := 0; i < window; i++ {
		if r := seasonLength - i; r > 0 {
			rounds = append(rounds, r)
		}
	}
	return rounds
}

// RoundsResult is the outcome of a best-effort round collection.
type RoundsResult struct {
	// Transactions from every round that was fetched, in round order.
	Transactions []domain.RawTransaction

	// Skipped lists rounds whose fetch failed.
	Skipped []int
}

// CollectRounds fetches each round in turn. A failed round is skipped and
// recorded; it never aborts the collection.
func (f *Fetcher) CollectRounds(ctx context.Context, leagueID string, rounds []int) RoundsResult {
	var res RoundsResult
	for _, round := range rounds {
		txns, err := f.provider.Transactions(ctx, leagueID, round)
		if err != nil {
			logger.Debug("Skipping round %d: %v", round, err)
			res.Skipped = append(res.Skipped, round)
			f.metrics.RoundSkipped(round)
			continue
		}
		res.Transactions = append(res.Transactions, txns...)
	}
	return res
}

// Fetch retrieves league, users, rosters, the recent transaction window and
// the player dictionary. Only the transaction rounds are best-effort.
func (f *Fetcher) Fetch(ctx context.Context, leagueID string) (*domain.Bundle, error) {
	league, err := f.provider.League(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch league: %w", err)
	}

	users, err := f.provider.Users(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	rosters, err := f.provider.Rosters(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch rosters: %w", err)
	}

	seasonLength := f.defaultSeasonLength
	if league.SeasonLength != nil && *league.SeasonLength > 0 {
		seasonLength = *league.SeasonLength
	}
	rounds := RecentRounds(seasonLength, f.roundsWindow)
	logger.Debug("Fetching transactions for rounds %v", rounds)
	collected := f.CollectRounds(ctx, leagueID, rounds)

	players, err := f.provider.Players(ctx, f.sport)
	if err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	return &domain.Bundle{
		League:        *league,
		Users:         users,
		Rosters:       rosters,
		Transactions:  collected.Transactions,
		Players:       players,
		SkippedRounds: collected.Skipped,
	}, nil
}

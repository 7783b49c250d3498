package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// mockProvider implements driven.LeagueProvider for testing.
type mockProvider struct {
	league       *domain.League
	users        []domain.RawUser
	rosters      []domain.RawRoster
	transactions map[int][]domain.RawTransaction
	players      map[string]domain.RawPlayer

	failRounds  map[int]bool
	leagueErr   error
	playersErr  error
	rounds      []int
	playerCalls int
}

func (m *mockProvider) League(_ context.Context, _ string) (*domain.League, error) {
	if m.leagueErr != nil {
		return nil, m.leagueErr
	}
	if m.league == nil {
		return &domain.League{}, nil
	}
	return m.league, nil
}

func (m *mockProvider) Users(_ context.Context, _ string) ([]domain.RawUser, error) {
	return m.users, nil
}

func (m *mockProvider) Rosters(_ context.Context, _ string) ([]domain.RawRoster, error) {
	return m.rosters, nil
}

func (m *mockProvider) Transactions(_ context.Context, _ string, round int) ([]domain.RawTransaction, error) {
	m.rounds = append(m.rounds, round)
	if m.failRounds[round] {
		return nil, errors.New("status 500")
	}
	return m.transactions[round], nil
}

func (m *mockProvider) Players(_ context.Context, _ string) (map[string]domain.RawPlayer, error) {
	m.playerCalls++
	if m.playersErr != nil {
		return nil, m.playersErr
	}
	return m.players, nil
}

// recordingMetrics implements driven.Metrics and counts observations.
type recordingMetrics struct {
	mu        sync.Mutex
	skipped   []int
	events    map[domain.EventKind]int
	written   map[domain.EventKind]int
	committed int
	publishes []bool
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		events:  map[domain.EventKind]int{},
		written: map[domain.EventKind]int{},
	}
}

func (r *recordingMetrics) RoundSkipped(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, round)
}

func (r *recordingMetrics) EventNormalised(kind domain.EventKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[kind]++
}

func (r *recordingMetrics) ArticleWritten(kind domain.EventKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.written[kind]++
}

func (r *recordingMetrics) FilesCommitted(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed += n
}

func (r *recordingMetrics) PublishCompleted(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishes = append(r.publishes, ok)
}

func ms(t time.Time) *int64 {
	v := t.UnixMilli()
	return &v
}

func intPtr(v int) *int { return &v }

// leagueFixture is two managed rosters and three known players.
func leagueFixture() *mockProvider {
	return &mockProvider{
		league: &domain.League{LeagueID: "L1", Name: "RABKL", SeasonLength: intPtr(20)},
		users: []domain.RawUser{
			{UserID: "u1", Username: "alice", DisplayName: "Alice", Metadata: domain.UserMetadata{TeamName: "Lakers"}},
			{UserID: "u2", Username: "bob", DisplayName: "Bob"},
		},
		rosters: []domain.RawRoster{
			{RosterID: 1, OwnerID: "u1"},
			{RosterID: 2, OwnerID: "u2"},
			{RosterID: 3, OwnerID: "ghost"},
		},
		transactions: map[int][]domain.RawTransaction{},
		players: map[string]domain.RawPlayer{
			"p1": {FullName: "LeBron James", Team: "LAL", Position: "SF", FantasyPositions: []string{"F"}},
			"p2": {FirstName: "Steph", LastName: "Curry", Team: "GSW", Position: "PG"},
			"p3": {FullName: "Jalen Brunson", Team: "NYK"},
		},
	}
}

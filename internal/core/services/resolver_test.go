package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

func newFixtureResolver() *Resolver {
	p := leagueFixture()
	return NewResolver(p.users, p.rosters, p.players)
}

func TestResolver_ResolveOwner(t *testing.T) {
	r := newFixtureResolver()

	tests := []struct {
		name     string
		rosterID int
		want     domain.Identity
	}{
		{"team name wins", 1, domain.Identity{Team: "Lakers", GM: "Alice", Handle: "@alice"}},
		{"display name as team", 2, domain.Identity{Team: "Bob", GM: "Bob", Handle: "@bob"}},
		{"roster with unknown owner", 3, domain.Identity{Team: "Team 3", GM: "GM"}},
		{"unknown roster", 42, domain.Identity{Team: "Team 42", GM: "GM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveOwner(tt.rosterID))
		})
	}
}

func TestResolver_UsernameFallback(t *testing.T) {
	r := NewResolver(
		[]domain.RawUser{{UserID: "u9", Username: "carol"}},
		[]domain.RawRoster{{RosterID: 9, OwnerID: "u9"}},
		nil,
	)

	assert.Equal(t, domain.Identity{Team: "carol", GM: "carol", Handle: "@carol"}, r.ResolveOwner(9))
}

func TestResolver_LookupOwner(t *testing.T) {
	r := newFixtureResolver()

	id, ok := r.LookupOwner(1)
	assert.True(t, ok)
	assert.Equal(t, "Lakers", id.Team)

	_, ok = r.LookupOwner(42)
	assert.False(t, ok)
}

func TestResolver_ResolvePlayer(t *testing.T) {
	r := NewResolver(nil, nil, map[string]domain.RawPlayer{
		"full":     {FullName: "LeBron James", Team: "LAL", Position: "SF", FantasyPositions: []string{"F", "SF"}},
		"split":    {FirstName: "Steph", LastName: "Curry", Position: "PG"},
		"first":    {FirstName: "Nene"},
		"nameless": {Team: "FA"},
	})

	tests := []struct {
		name string
		id   string
		want domain.PlayerRef
	}{
		{"full name and fantasy position", "full", domain.PlayerRef{Name: "LeBron James", Team: "LAL", Position: "F"}},
		{"first and last", "split", domain.PlayerRef{Name: "Steph Curry", Position: "PG"}},
		{"first only", "first", domain.PlayerRef{Name: "Nene"}},
		{"no name", "nameless", domain.PlayerRef{Name: "Player nameless", Team: "FA"}},
		{"unknown", "9999", domain.PlayerRef{Name: "Player 9999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolvePlayer(tt.id))
		})
	}
}

func TestResolver_PlayerNames(t *testing.T) {
	r := newFixtureResolver()

	names := r.PlayerNames([]domain.PlayerMove{{PlayerID: "p2"}, {PlayerID: "x"}, {PlayerID: "p1"}})
	assert.Equal(t, []string{"Steph Curry", "Player x", "LeBron James"}, names)
	assert.Empty(t, r.PlayerNames(nil))
}

package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// Resolver maps opaque roster and player ids to display identities.
// Every Resolve method is total: misses degrade to placeholders.
type Resolver struct {
	owners  map[int]domain.Identity
	players map[string]domain.RawPlayer
}

// NewResolver indexes the bundle's users, rosters and players.
func NewResolver(users []domain.RawUser, rosters []domain.RawRoster, players map[string]domain.RawPlayer) *Resolver {
	userByID := make(map[string]domain.RawUser, len(users))
	for _, u := range users {
		userByID[u.UserID] = u
	}

	owners := make(map[int]domain.Identity, len(rosters))
	for _, r := range rosters {
		u, ok := userByID[r.OwnerID]
		if !ok {
			u = domain.RawUser{}
		}
		owners[r.RosterID] = identityFor(r.RosterID, u)
	}

	return &Resolver{owners: owners, players: players}
}

// identityFor applies the team/manager preference order to a user.
func identityFor(rosterID int, u domain.RawUser) domain.Identity {
	id := domain.Identity{
		Team: firstNonEmpty(u.Metadata.TeamName, u.DisplayName, u.Username, fmt.Sprintf("Team %d", rosterID)),
		GM:   firstNonEmpty(u.DisplayName, u.Username, "GM"),
	}
	if u.Username != "" {
		id.Handle = "@" + u.Username
	}
	return id
}

// LookupOwner returns the identity of a roster known to the league.
func (r *Resolver) LookupOwner(rosterID int) (domain.Identity, bool) {
	id, ok := r.owners[rosterID]
	return id, ok
}

// ResolveOwner returns the identity of a roster, synthesising
// "Team {id}" / "GM" for rosters the league does not know.
func (r *Resolver) ResolveOwner(rosterID int) domain.Identity {
	if id, ok := r.owners[rosterID]; ok {
		return id
	}
	return identityFor(rosterID, domain.RawUser{})
}

// ResolvePlayer returns the display form of a player id.
func (r *Resolver) ResolvePlayer(playerID string) domain.PlayerRef {
	p, ok := r.players[playerID]
	if !ok {
		return domain.PlayerRef{Name: placeholderPlayer(playerID)}
	}

	name := p.FullName
	if name == "" {
		name = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	if name == "" {
		name = placeholderPlayer(playerID)
	}

	pos := p.Position
	if len(p.FantasyPositions) > 0 && p.FantasyPositions[0] != "" {
		pos = p.FantasyPositions[0]
	}

	return domain.PlayerRef{Name: name, Team: p.Team, Position: pos}
}

// PlayerNames resolves every move's player to a display name.
func (r *Resolver) PlayerNames(moves []domain.PlayerMove) []string {
	names := make([]string, 0, len(moves))
	for _, m := range moves {
		names = append(names, r.ResolvePlayer(m.PlayerID).Name)
	}
	return names
}

func placeholderPlayer(playerID string) string {
	return "Player " + playerID
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

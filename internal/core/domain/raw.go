package domain

import "time"

// Transaction types reported by the league provider.
const (
	TransactionTrade     = "trade"
	TransactionFreeAgent = "free_agent"
	TransactionWaiver    = "waiver"
)

// PlayerMove is one entry of a transaction's adds or drops mapping:
// the player that moved and the roster on the receiving (adds) or
// losing (drops) side.
type PlayerMove struct {
	PlayerID string
	RosterID int
}

// RawTransaction is a transaction record as reported by the provider.
// Every field is optional upstream; accessors return typed defaults.
type RawTransaction struct {
	// ID is the provider's transaction identifier.
	ID string

	// Type is the provider's type tag (trade, free_agent, waiver, commissioner...).
	Type string

	// Created is the creation time in Unix milliseconds, nil when absent.
	Created *int64

	// RosterIDs lists every roster involved, in provider order.
	RosterIDs []int

	// Adds and Drops keep the order the provider listed them in.
	Adds  []PlayerMove
	Drops []PlayerMove

	// Status is the provider's processing status (e.g. "complete").
	Status string

	// Leg is the round the transaction belongs to.
	Leg int
}

// CreatedAt returns the creation time and whether the record carried one.
func (t *RawTransaction) CreatedAt() (time.Time, bool) {
	if t.Created == nil || *t.Created == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(*t.Created).UTC(), true
}

// FirstRoster returns the first referenced roster, if any.
func (t *RawTransaction) FirstRoster() (int, bool) {
	if len(t.RosterIDs) == 0 {
		return 0, false
	}
	return t.RosterIDs[0], true
}

// DistinctRosters returns the referenced roster ids with duplicates removed,
// keeping first-seen order.
func (t *RawTransaction) DistinctRosters() []int {
	seen := make(map[int]struct{}, len(t.RosterIDs))
	out := make([]int, 0, len(t.RosterIDs))
	for _, id := range t.RosterIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// League is the subset of league metadata the newsroom needs.
type League struct {
	LeagueID string
	Name     string
	Season   string
	Sport    string

	// SeasonLength is the number of rounds, nil when the provider omits it.
	SeasonLength *int
}

// UserMetadata carries the free-form per-user settings we read.
type UserMetadata struct {
	TeamName string
}

// RawUser is a league member.
type RawUser struct {
	UserID      string
	Username    string
	DisplayName string
	Metadata    UserMetadata
}

// RawRoster links a roster slot to its owning user.
type RawRoster struct {
	RosterID int
	OwnerID  string
}

// RawPlayer is one entry of the provider's player dictionary.
type RawPlayer struct {
	FullName         string
	FirstName        string
	LastName         string
	Team             string
	Position         string
	FantasyPositions []string
}

// Bundle is everything fetched from the provider for a single run.
type Bundle struct {
	League       League
	Users        []RawUser
	Rosters      []RawRoster
	Transactions []RawTransaction
	Players      map[string]RawPlayer

	// SkippedRounds lists rounds whose transactions could not be fetched.
	SkippedRounds []int
}

package domain

import (
	"strings"
	"time"
)

// EventKind identifies the variant of an Event.
type EventKind string

// Supported event kinds.
const (
	// EventTrade is a multi-roster trade.
	EventTrade EventKind = "TRADE"

	// EventSigning is a waiver or free-agent add/drop by one roster.
	EventSigning EventKind = "SIGNING"
)

// String returns the string representation.
func (k EventKind) String() string {
	return string(k)
}

// Tag returns the lowercase form used as an article tag.
func (k EventKind) Tag() string {
	return strings.ToLower(string(k))
}

// Event is the canonical form of a roster move.
// The only implementations are *Trade and *Signing.
type Event interface {
	// EventID is the provider transaction id.
	EventID() string

	// Kind reports the variant.
	Kind() EventKind

	// OccurredAt is the transaction creation time, or the normalisation
	// time when the provider did not report one.
	OccurredAt() time.Time

	// Participants are the resolved identities involved.
	Participants() []Identity

	sealed()
}

// AssetMove is a single player entering or leaving a roster within a trade.
// Exactly one of In or Out is set.
type AssetMove struct {
	RosterID int    `json:"roster_id"`
	In       string `json:"in,omitempty"`
	Out      string `json:"out,omitempty"`
}

// Trade is a TRADE event. Assets hold one entry per add or drop observed;
// an asset that moved between two rosters appears twice.
type Trade struct {
	ID        string      `json:"event_id"`
	Timestamp time.Time   `json:"timestamp"`
	Actors    []Identity  `json:"actors"`
	Assets    []AssetMove `json:"assets"`
}

// EventID implements Event.
func (t *Trade) EventID() string { return t.ID }

// Kind implements Event.
func (t *Trade) Kind() EventKind { return EventTrade }

// OccurredAt implements Event.
func (t *Trade) OccurredAt() time.Time { return t.Timestamp }

// Participants implements Event.
func (t *Trade) Participants() []Identity { return t.Actors }

func (t *Trade) sealed() {}

// Incoming returns the names of every asset entering a roster, in order.
func (t *Trade) Incoming() []string {
	var names []string
	for _, a := range t.Assets {
		if a.In != "" {
			names = append(names, a.In)
		}
	}
	return names
}

// Signing is a SIGNING event: at most one actor and at least one add or drop.
type Signing struct {
	ID        string     `json:"event_id"`
	Timestamp time.Time  `json:"timestamp"`
	Actors    []Identity `json:"actors"`
	Adds      []string   `json:"adds"`
	Drops     []string   `json:"drops"`
}

// EventID implements Event.
func (s *Signing) EventID() string { return s.ID }

// Kind implements Event.
func (s *Signing) Kind() EventKind { return EventSigning }

// OccurredAt implements Event.
func (s *Signing) OccurredAt() time.Time { return s.Timestamp }

// Participants implements Event.
func (s *Signing) Participants() []Identity { return s.Actors }

func (s *Signing) sealed() {}

// ActorTeam returns the team name of the i-th participant, or fallback.
func ActorTeam(e Event, i int, fallback string) string {
	actors := e.Participants()
	if i < len(actors) && actors[i].Team != "" {
		return actors[i].Team
	}
	return fallback
}

// ActorTeams returns every non-empty participant team name.
func ActorTeams(e Event) []string {
	var teams []string
	for _, a := range e.Participants() {
		if a.Team != "" {
			teams = append(teams, a.Team)
		}
	}
	return teams
}

package sleeper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// leagueJSON is the /league/{id} response.
type leagueJSON struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Sport        string `json:"sport"`
	SeasonLength *int   `json:"season_length"`
}

func (l *leagueJSON) toDomain() *domain.League {
	return &domain.League{
		LeagueID:     l.LeagueID,
		Name:         l.Name,
		Season:       l.Season,
		Sport:        l.Sport,
		SeasonLength: l.SeasonLength,
	}
}

// userJSON is one entry of /league/{id}/users.
type userJSON struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Metadata    *struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

func (u *userJSON) toDomain() domain.RawUser {
	out := domain.RawUser{
		UserID:      u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
	if u.Metadata != nil {
		out.Metadata.TeamName = u.Metadata.TeamName
	}
	return out
}

// rosterJSON is one entry of /league/{id}/rosters.
type rosterJSON struct {
	RosterID int    `json:"roster_id"`
	OwnerID  string `json:"owner_id"`
}

// transactionJSON is one entry of /league/{id}/transactions/{round}.
type transactionJSON struct {
	TransactionID string     `json:"transaction_id"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Created       *int64     `json:"created"`
	RosterIDs     []int      `json:"roster_ids"`
	Adds          orderedMap `json:"adds"`
	Drops         orderedMap `json:"drops"`
	Leg           int        `json:"leg"`
}

func (t *transactionJSON) toDomain() domain.RawTransaction {
	return domain.RawTransaction{
		ID:        t.TransactionID,
		Type:      t.Type,
		Created:   t.Created,
		RosterIDs: t.RosterIDs,
		Adds:      []domain.PlayerMove(t.Adds),
		Drops:     []domain.PlayerMove(t.Drops),
		Status:    t.Status,
		Leg:       t.Leg,
	}
}

// orderedMap decodes a {"player_id": roster_id} object keeping key order.
type orderedMap []domain.PlayerMove

// UnmarshalJSON implements json.Unmarshaler.
func (m *orderedMap) UnmarshalJSON(data []byte) error {
	*m = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sleeper: moves: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		rosterID, err := rosterIDFrom(raw)
		if err != nil {
			return fmt.Errorf("sleeper: moves[%s]: %w", key, err)
		}
		*m = append(*m, domain.PlayerMove{PlayerID: key, RosterID: rosterID})
	}

	_, err = dec.Token()
	return err
}

// rosterIDFrom accepts a number or a numeric string.
func rosterIDFrom(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("roster id %s is neither number nor string", raw)
	}
	return strconv.Atoi(s)
}

// playerJSON is one value of the /players/{sport} dictionary.
type playerJSON struct {
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Team             string   `json:"team"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
}

func (p *playerJSON) toDomain() domain.RawPlayer {
	return domain.RawPlayer{
		FullName:         p.FullName,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Team:             p.Team,
		Position:         p.Position,
		FantasyPositions: p.FantasyPositions,
	}
}

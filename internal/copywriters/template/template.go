// Package template produces deterministic article copy by interpolation.
package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// Ensure Copywriter implements the interface.
var _ driven.CopyGenerator = (*Copywriter)(nil)

// Name is the strategy name.
const Name = "template"

// maxIncoming caps the names listed in a trade body.
const maxIncoming = 3

// Copywriter is the template strategy. Generate never returns an error.
type Copywriter struct{}

// New creates a template copywriter.
func New() *Copywriter {
	return &Copywriter{}
}

// Name returns the strategy name.
func (c *Copywriter) Name() string {
	return Name
}

// Generate builds copy for the event.
func (c *Copywriter) Generate(_ context.Context, event domain.Event) (domain.Copy, error) {
	switch ev := event.(type) {
	case *domain.Trade:
		return tradeCopy(ev), nil
	case *domain.Signing:
		return signingCopy(ev), nil
	default:
		return domain.Copy{
			Title: "League update",
			Body:  "League sources report roster activity.",
		}, nil
	}
}

func tradeCopy(t *domain.Trade) domain.Copy {
	a := domain.ActorTeam(t, 0, "Team A")
	b := domain.ActorTeam(t, 1, "Team B")

	headliners := "multiple assets"
	if incoming := t.Incoming(); len(incoming) > 0 {
		if len(incoming) > maxIncoming {
			incoming = incoming[:maxIncoming]
		}
		headliners = strings.Join(incoming, ", ")
	}

	return domain.Copy{
		Title: fmt.Sprintf("%s and %s agree to trade", a, b),
		Body: fmt.Sprintf(
			"League sources confirm a trade between %s and %s. Headliners include %s. Early grade pending Office review.",
			a, b, headliners),
		Tags: []string{domain.EventTrade.Tag(), a, b},
	}
}

func signingCopy(s *domain.Signing) domain.Copy {
	team := domain.ActorTeam(s, 0, "Team")

	added := "—"
	if len(s.Adds) > 0 {
		added = strings.Join(s.Adds, ", ")
	}
	var dropped string
	if len(s.Drops) > 0 {
		dropped = "; dropped " + strings.Join(s.Drops, ", ")
	}

	return domain.Copy{
		Title: team + " roster move",
		Body:  fmt.Sprintf("According to league circles, %s completed a transaction: added %s%s.", team, added, dropped),
		Tags:  []string{domain.EventSigning.Tag(), team},
	}
}

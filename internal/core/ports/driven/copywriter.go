package driven

import (
	"context"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// CopyGenerator produces the headline, body and tags for one event.
// The strategy is chosen once at start-up; callers never branch on it.
type CopyGenerator interface {
	// Name identifies the strategy ("template", "llm").
	Name() string

	// Generate returns copy for the event.
	Generate(ctx context.Context, event domain.Event) (domain.Copy, error)
}

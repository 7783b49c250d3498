package driving

import (
	"context"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// Publisher commits content files and redeploys the site.
type Publisher interface {
	// Configured reports whether the commit and deploy credentials are present.
	Configured() bool

	// Publish commits every file in order, then fires the deploy hook.
	// Returns domain.ErrNotConfigured when credentials are missing.
	Publish(ctx context.Context, req domain.PublishRequest) (*domain.PublishResult, error)
}

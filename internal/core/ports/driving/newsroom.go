package driving

import (
	"context"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// Newsroom turns league activity into articles.
type Newsroom interface {
	// Run fetches, normalises and writes up to MaxEvents articles.
	Run(ctx context.Context, opts RunOptions) (*RunReport, error)

	// Preview fetches and normalises without generating copy or writing files.
	Preview(ctx context.Context) (*Preview, error)
}

// RunOptions adjusts a single run.
type RunOptions struct {
	// MaxEvents caps the batch; zero uses the configured value.
	MaxEvents int

	// DryRun generates copy but writes nothing.
	DryRun bool

	// Publish commits the written articles and triggers a deploy afterwards.
	Publish bool
}

// RunReport summarises a run.
type RunReport struct {
	// RunID identifies the run in logs.
	RunID string

	// NoEvents is true when normalisation produced nothing to write.
	NoEvents bool

	// Events is the number of events normalised (before the batch cap).
	Events int

	// Written lists the article paths in write order.
	Written []string

	// Drafts holds the generated copy, in batch order.
	Drafts []Draft

	// SkippedRounds lists rounds whose transactions could not be fetched.
	SkippedRounds []int

	// Published is set when the run's articles were committed.
	Published *domain.PublishResult
}

// Draft pairs an event with its generated copy.
type Draft struct {
	Event domain.Event
	Copy  domain.Copy
}

// Preview is the result of a fetch and normalise pass.
type Preview struct {
	League        domain.League
	Events        []domain.Event
	SkippedRounds []int
}

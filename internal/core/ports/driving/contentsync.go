package driving

import "context"

// ContentSyncer stages generated content into the site's page tree.
type ContentSyncer interface {
	// SyncOnce copies every mapping whose source exists.
	SyncOnce(ctx context.Context) SyncReport

	// Watch re-syncs whenever a source tree changes, until ctx is cancelled.
	// onSync is called after each pass.
	Watch(ctx context.Context, onSync func(SyncReport)) error
}

// SyncReport lists the outcome of one sync pass.
type SyncReport struct {
	Copied  []MappingResult
	Skipped []MappingResult
	Failed  []MappingResult
}

// MappingResult is the outcome for one mapping.
type MappingResult struct {
	From  string
	To    string
	Files int
	Err   error
}

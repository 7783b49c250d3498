package driven

import "context"

// ContentCommitter writes files into the content repository.
type ContentCommitter interface {
	// Commit creates or updates one file on the configured branch.
	Commit(ctx context.Context, path string, content []byte, message string) error
}

// DeployTrigger asks the hosting platform to rebuild the site.
type DeployTrigger interface {
	// Trigger fires the deploy hook.
	Trigger(ctx context.Context) error
}

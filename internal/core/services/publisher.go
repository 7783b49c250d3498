package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Ensure PublishService implements the interface.
var _ driving.Publisher = (*PublishService)(nil)

// PublishService commits files to the content repository and then triggers
// a redeploy.
type PublishService struct {
	committer driven.ContentCommitter
	deployer  driven.DeployTrigger
	metrics   driven.Metrics
}

// NewPublishService creates a publisher. Either collaborator may be nil when
// its credential is missing; Publish then reports domain.ErrNotConfigured.
func NewPublishService(committer driven.ContentCommitter, deployer driven.DeployTrigger) *PublishService {
	return &PublishService{
		committer: committer,
		deployer:  deployer,
		metrics:   driven.NopMetrics{},
	}
}

// SetMetrics sets the metrics recorder. Nil restores the no-op recorder.
func (s *PublishService) SetMetrics(m driven.Metrics) {
	if m == nil {
		m = driven.NopMetrics{}
	}
	s.metrics = m
}

// Configured reports whether both the committer and the deploy hook are set.
func (s *PublishService) Configured() bool {
	return s.committer != nil && s.deployer != nil
}

// Publish commits each file in order, then fires the deploy hook once.
// The first failure aborts; files already committed stay committed.
func (s *PublishService) Publish(ctx context.Context, req domain.PublishRequest) (*domain.PublishResult, error) {
	if !s.Configured() {
		return nil, domain.ErrNotConfigured
	}

	res := &domain.PublishResult{Committed: make([]string, 0, len(req.Files))}
	msg := req.CommitMessage()

	for _, f := range req.Files {
		content, err := f.Bytes()
		if err != nil {
			s.metrics.PublishCompleted(false)
			return nil, err
		}
		if err := s.committer.Commit(ctx, f.Path, content, msg); err != nil {
			s.metrics.FilesCommitted(len(res.Committed))
			s.metrics.PublishCompleted(false)
			return nil, fmt.Errorf("commit %s: %w", f.Path, err)
		}
		logger.Debug("Committed %s", f.Path)
		res.Committed = append(res.Committed, f.Path)
	}
	s.metrics.FilesCommitted(len(res.Committed))

	if err := s.deployer.Trigger(ctx); err != nil {
		s.metrics.PublishCompleted(false)
		return nil, fmt.Errorf("trigger deploy: %w", err)
	}
	res.Deployed = true
	s.metrics.PublishCompleted(true)

	logger.Info("Published %d files", len(res.Committed))
	return res, nil
}

package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Ensure NewsroomService implements the interface.
var _ driving.Newsroom = (*NewsroomService)(nil)

// NewsroomService runs the fetch, normalise, generate and write pipeline.
type NewsroomService struct {
	leagueID   string
	maxEvents  int
	fetcher    *Fetcher
	normaliser *Normaliser
	copywriter driven.CopyGenerator
	writer     driven.ArticleWriter

	// Optional collaborators.
	archive   driven.ArticleArchive
	publisher driving.Publisher
	metrics   driven.Metrics
	newRunID  func() string
}

// NewNewsroomService creates the run orchestrator.
// maxEvents falls back to domain.DefaultMaxEvents when not positive.
func NewNewsroomService(
	leagueID string,
	maxEvents int,
	fetcher *Fetcher,
	normaliser *Normaliser,
	copywriter driven.CopyGenerator,
	writer driven.ArticleWriter,
) *NewsroomService {
	if maxEvents <= 0 {
		maxEvents = domain.DefaultMaxEvents
	}
	return &NewsroomService{
		leagueID:   leagueID,
		maxEvents:  maxEvents,
		fetcher:    fetcher,
		normaliser: normaliser,
		copywriter: copywriter,
		writer:     writer,
		metrics:    driven.NopMetrics{},
		newRunID:   func() string { return strconv.FormatInt(time.Now().UnixNano(), 36) },
	}
}

// SetArchive mirrors every written article to the given archive.
func (s *NewsroomService) SetArchive(archive driven.ArticleArchive) {
	s.archive = archive
}

// SetPublisher enables RunOptions.Publish.
func (s *NewsroomService) SetPublisher(publisher driving.Publisher) {
	s.publisher = publisher
}

// SetMetrics sets the metrics recorder. Nil restores the no-op recorder.
func (s *NewsroomService) SetMetrics(m driven.Metrics) {
	if m == nil {
		m = driven.NopMetrics{}
	}
	s.metrics = m
}

// SetRunIDGenerator overrides how run ids are generated.
func (s *NewsroomService) SetRunIDGenerator(fn func() string) {
	if fn != nil {
		s.newRunID = fn
	}
}

// Preview fetches and normalises without generating or writing anything.
func (s *NewsroomService) Preview(ctx context.Context) (*driving.Preview, error) {
	bundle, err := s.fetcher.Fetch(ctx, s.leagueID)
	if err != nil {
		return nil, err
	}
	return &driving.Preview{
		League:        bundle.League,
		Events:        s.normaliser.Normalise(bundle),
		SkippedRounds: bundle.SkippedRounds,
	}, nil
}

// Run executes one newsroom pass. Events are processed one at a time and the
// first generation or write failure aborts the remaining batch.
func (s *NewsroomService) Run(ctx context.Context, opts driving.RunOptions) (*driving.RunReport, error) {
	if opts.Publish && opts.DryRun {
		return nil, fmt.Errorf("%w: cannot publish a dry run", domain.ErrInvalidInput)
	}
	if opts.Publish && (s.publisher == nil || !s.publisher.Configured()) {
		return nil, fmt.Errorf("publish: %w", domain.ErrNotConfigured)
	}

	report := &driving.RunReport{RunID: s.newRunID()}
	logger.Section("Run " + report.RunID)

	bundle, err := s.fetcher.Fetch(ctx, s.leagueID)
	if err != nil {
		return nil, err
	}
	report.SkippedRounds = bundle.SkippedRounds

	events := s.normaliser.Normalise(bundle)
	report.Events = len(events)
	logger.Info("Normalised %d events from %d transactions", len(events), len(bundle.Transactions))
	if len(events) == 0 {
		report.NoEvents = true
		return report, nil
	}

	limit := s.maxEvents
	if opts.MaxEvents > 0 {
		limit = opts.MaxEvents
	}
	if len(events) > limit {
		events = events[:limit]
	}

	var articles []*domain.Article
	for _, ev := range events {
		cp, err := s.copywriter.Generate(ctx, ev)
		if err != nil {
			return report, fmt.Errorf("generate copy for %s: %w", ev.EventID(), err)
		}
		report.Drafts = append(report.Drafts, driving.Draft{Event: ev, Copy: cp})

		if opts.DryRun {
			continue
		}

		article, err := s.writer.Write(ctx, ev, cp)
		if err != nil {
			return report, fmt.Errorf("write article for %s: %w", ev.EventID(), err)
		}
		logger.Debug("Wrote %s", article.Path)
		report.Written = append(report.Written, article.Path)
		articles = append(articles, article)
		s.metrics.ArticleWritten(ev.Kind())

		if s.archive != nil {
			if err := s.archive.Put(ctx, article); err != nil {
				return report, fmt.Errorf("archive %s: %w", article.Path, err)
			}
		}
	}

	if opts.Publish {
		res, err := s.publisher.Publish(ctx, publishRequestFor(articles))
		if err != nil {
			return report, err
		}
		report.Published = res
	}

	return report, nil
}

func publishRequestFor(articles []*domain.Article) domain.PublishRequest {
	req := domain.PublishRequest{Files: make([]domain.PublishFile, 0, len(articles))}
	for _, a := range articles {
		req.Files = append(req.Files, domain.PublishFile{
			Path:    filepath.ToSlash(a.Path),
			Content: string(a.Content),
		})
	}
	return req
}

// Package app wires adapters and services together from settings.
//
// It is the only package that knows every concrete adapter. Binaries call
// New once at start-up and hand the resulting services to their driving
// adapter.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"

	s3blob "github.com/custodia-labs/newsroom/internal/adapters/driven/blob/s3"
	configfile "github.com/custodia-labs/newsroom/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsroom/internal/adapters/driven/deploy"
	"github.com/custodia-labs/newsroom/internal/adapters/driven/github"
	"github.com/custodia-labs/newsroom/internal/adapters/driven/sleeper"
	storagefile "github.com/custodia-labs/newsroom/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/newsroom/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/newsroom/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/newsroom/internal/adapters/driving/api"
	"github.com/custodia-labs/newsroom/internal/contentsync"
	"github.com/custodia-labs/newsroom/internal/copywriters"
	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/core/services"
	"github.com/custodia-labs/newsroom/internal/logger"
	"github.com/custodia-labs/newsroom/internal/metrics"
)

// MemoryCachePath selects the in-process player cache instead of SQLite.
const MemoryCachePath = ":memory:"

// App holds every wired service for one process.
type App struct {
	Settings  *domain.Settings
	Newsroom  *services.NewsroomService
	Publisher *services.PublishService
	Syncer    *contentsync.Syncer
	Metrics   *metrics.Collector
	Router    *chi.Mux
	CopyName  string

	closers []func() error
}

// Options adjusts wiring.
type Options struct {
	// Now is the run clock. Nil uses time.Now.
	Now func() time.Time

	// RunID generates run identifiers. Nil keeps the service default.
	RunID func() string
}

// New builds the full application from settings.
func New(ctx context.Context, settings *domain.Settings, opts Options) (*App, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := &App{
		Settings: settings,
		Metrics:  metrics.NewCollector(),
	}

	publisher, err := NewPublisher(ctx, settings)
	if err != nil {
		return nil, err
	}
	publisher.SetMetrics(a.Metrics)
	a.Publisher = publisher

	var provider driven.LeagueProvider = sleeper.NewClient(sleeper.Config{
		BaseURL:   settings.League.BaseURL,
		UserAgent: settings.League.UserAgent,
	})
	if settings.PlayerCacheEnabled() {
		cache, err := openPlayerCache(settings.Cache.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, cache.Close)
		provider = services.NewCachedPlayers(provider, cache, settings.Cache.TTL, now)
	}

	fetcher := services.NewFetcher(provider, settings.League.Sport, settings.League.RoundsWindow, settings.League.DefaultSeasonLength)
	fetcher.SetMetrics(a.Metrics)

	normaliser := services.NewNormaliser(now)
	normaliser.SetMetrics(a.Metrics)

	prompts := configfile.NewPromptStore(settings.LLM.PromptDir)
	copywriter, err := copywriters.New(settings, prompts)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create copywriter: %w", err)
	}
	a.CopyName = copywriter.Name()

	writer := storagefile.NewArticleWriter(settings.Newsroom, now)

	newsroom := services.NewNewsroomService(
		settings.League.ID,
		settings.Newsroom.MaxEvents,
		fetcher,
		normaliser,
		copywriter,
		writer,
	)
	newsroom.SetMetrics(a.Metrics)
	newsroom.SetPublisher(publisher)
	if opts.RunID != nil {
		newsroom.SetRunIDGenerator(opts.RunID)
	}

	if settings.ArchiveConfigured() {
		archive, err := s3blob.New(ctx, s3blob.Config{
			Endpoint:       settings.Archive.Endpoint,
			Region:         settings.Archive.Region,
			Bucket:         settings.Archive.Bucket,
			Prefix:         settings.Archive.Prefix,
			AccessKey:      settings.Archive.AccessKey,
			SecretKey:      settings.Archive.SecretKey,
			ForcePathStyle: settings.Archive.ForcePathStyle,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create archive: %w", err)
		}
		newsroom.SetArchive(archive)
	}
	a.Newsroom = newsroom

	a.Syncer = contentsync.New(settings.Sync)
	a.Router = api.NewRouter(publisher, a.Metrics)

	return a, nil
}

// NewPublisher builds the publish service alone. Missing credentials leave
// the service unconfigured rather than failing.
func NewPublisher(ctx context.Context, settings *domain.Settings) (*services.PublishService, error) {
	var (
		committer driven.ContentCommitter
		deployer  driven.DeployTrigger
	)

	if settings.Publish.GitHubToken != "" {
		c, err := github.NewCommitter(ctx, github.Config{
			Token:  settings.Publish.GitHubToken,
			Owner:  settings.Publish.Owner,
			Repo:   settings.Publish.Repo,
			Branch: settings.Publish.Branch,
		})
		if err != nil {
			return nil, fmt.Errorf("create committer: %w", err)
		}
		committer = c
	}

	if settings.Publish.DeployHook != "" {
		h, err := deploy.NewHook(settings.Publish.DeployHook, nil)
		if err != nil {
			return nil, fmt.Errorf("create deploy hook: %w", err)
		}
		deployer = h
	}

	if committer == nil || deployer == nil {
		logger.Debug("Publishing disabled: GitHub token or deploy hook missing")
	}
	return services.NewPublishService(committer, deployer), nil
}

// Load reads settings from path and builds the application.
func Load(ctx context.Context, path string, opts Options) (*App, error) {
	settings, err := configfile.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, settings, opts)
}

// Close releases every resource opened by New.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openPlayerCache(path string) (driven.PlayerCache, error) {
	if path == MemoryCachePath {
		return memory.NewPlayerCache(), nil
	}
	store, err := sqlite.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("open player cache: %w", err)
	}
	return store, nil
}

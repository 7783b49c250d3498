package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagefile "github.com/custodia-labs/newsroom/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/newsroom/internal/copywriters/template"
	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
)

// mockCopywriter implements driven.CopyGenerator for testing.
type mockCopywriter struct {
	failOn string
	calls  []string
}

func (m *mockCopywriter) Name() string { return "mock" }

func (m *mockCopywriter) Generate(_ context.Context, event domain.Event) (domain.Copy, error) {
	m.calls = append(m.calls, event.EventID())
	if event.EventID() == m.failOn {
		return domain.Copy{}, errors.New("completion failed")
	}
	return domain.Copy{Title: "Story " + event.EventID(), Body: "body", Tags: []string{event.Kind().Tag()}}, nil
}

// mockWriter implements driven.ArticleWriter for testing.
type mockWriter struct {
	failOn  string
	written []string
}

func (m *mockWriter) Write(_ context.Context, event domain.Event, cp domain.Copy) (*domain.Article, error) {
	if event.EventID() == m.failOn {
		return nil, errors.New("disk full")
	}
	path := filepath.Join("content", "2025", "03", "07", event.EventID()+".md")
	m.written = append(m.written, path)
	return &domain.Article{Path: path, EventID: event.EventID(), Content: []byte(cp.Title)}, nil
}

// mockArchive implements driven.ArticleArchive for testing.
type mockArchive struct {
	err  error
	keys []string
}

func (m *mockArchive) Put(_ context.Context, article *domain.Article) error {
	if m.err != nil {
		return m.err
	}
	m.keys = append(m.keys, article.Path)
	return nil
}

// mockPublisher implements driving.Publisher for testing.
type mockPublisher struct {
	configured bool
	err        error
	got        []domain.PublishRequest
}

func (m *mockPublisher) Configured() bool { return m.configured }

func (m *mockPublisher) Publish(_ context.Context, req domain.PublishRequest) (*domain.PublishResult, error) {
	m.got = append(m.got, req)
	if m.err != nil {
		return nil, m.err
	}
	res := &domain.PublishResult{Deployed: true}
	for _, f := range req.Files {
		res.Committed = append(res.Committed, f.Path)
	}
	return res, nil
}

// signings returns n free-agent pickups by roster 1 in round 20.
func signings(p *mockProvider, n int) {
	for i := 1; i <= n; i++ {
		p.transactions[20] = append(p.transactions[20], domain.RawTransaction{
			ID:        fmt.Sprintf("s%d", i),
			Type:      domain.TransactionFreeAgent,
			RosterIDs: []int{1},
			Adds:      []domain.PlayerMove{{PlayerID: "p3", RosterID: 1}},
		})
	}
}

func newTestNewsroom(p *mockProvider, cw *mockCopywriter, w *mockWriter, maxEvents int) *NewsroomService {
	svc := NewNewsroomService(
		"L1",
		maxEvents,
		NewFetcher(p, "nba", 6, 30),
		newTestNormaliser(),
		cw,
		w,
	)
	svc.SetRunIDGenerator(func() string { return "run-1" })
	return svc
}

func TestNewsroomRun_NoEvents(t *testing.T) {
	p := leagueFixture()
	w := &mockWriter{}
	cw := &mockCopywriter{}

	report, err := newTestNewsroom(p, cw, w, 5).Run(context.Background(), driving.RunOptions{})
	require.NoError(t, err)

	assert.True(t, report.NoEvents)
	assert.Equal(t, "run-1", report.RunID)
	assert.Empty(t, cw.calls)
	assert.Empty(t, w.written)
}

func TestNewsroomRun_CapsBatch(t *testing.T) {
	p := leagueFixture()
	signings(p, 7)
	w := &mockWriter{}
	rec := newRecordingMetrics()

	svc := newTestNewsroom(p, &mockCopywriter{}, w, 5)
	svc.SetMetrics(rec)

	report, err := svc.Run(context.Background(), driving.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 7, report.Events)
	assert.Len(t, report.Written, 5)
	assert.Len(t, report.Drafts, 5)
	assert.Equal(t, filepath.Join("content", "2025", "03", "07", "s5.md"), report.Written[4])
	assert.Equal(t, 5, rec.written[domain.EventSigning])
}

func TestNewsroomRun_MaxEventsOverride(t *testing.T) {
	p := leagueFixture()
	signings(p, 4)
	w := &mockWriter{}

	report, err := newTestNewsroom(p, &mockCopywriter{}, w, 5).Run(context.Background(), driving.RunOptions{MaxEvents: 2})
	require.NoError(t, err)
	assert.Len(t, report.Written, 2)
}

func TestNewsroomRun_AbortsOnFirstFailure(t *testing.T) {
	t.Run("generation", func(t *testing.T) {
		p := leagueFixture()
		signings(p, 4)
		cw := &mockCopywriter{failOn: "s2"}
		w := &mockWriter{}

		report, err := newTestNewsroom(p, cw, w, 5).Run(context.Background(), driving.RunOptions{})
		require.Error(t, err)

		assert.Contains(t, err.Error(), "generate copy for s2")
		assert.Equal(t, []string{"s1", "s2"}, cw.calls)
		assert.Len(t, report.Written, 1)
	})

	t.Run("write", func(t *testing.T) {
		p := leagueFixture()
		signings(p, 4)
		cw := &mockCopywriter{}
		w := &mockWriter{failOn: "s3"}

		report, err := newTestNewsroom(p, cw, w, 5).Run(context.Background(), driving.RunOptions{})
		require.Error(t, err)

		assert.Contains(t, err.Error(), "write article for s3")
		assert.Len(t, report.Written, 2)
		assert.Len(t, cw.calls, 3)
	})
}

func TestNewsroomRun_DryRunWritesNothing(t *testing.T) {
	p := leagueFixture()
	signings(p, 2)
	w := &mockWriter{}

	report, err := newTestNewsroom(p, &mockCopywriter{}, w, 5).Run(context.Background(), driving.RunOptions{DryRun: true})
	require.NoError(t, err)

	assert.Len(t, report.Drafts, 2)
	assert.Equal(t, "Story s1", report.Drafts[0].Copy.Title)
	assert.Empty(t, report.Written)
	assert.Empty(t, w.written)
}

func TestNewsroomRun_Archive(t *testing.T) {
	p := leagueFixture()
	signings(p, 2)

	t.Run("mirrors every article", func(t *testing.T) {
		archive := &mockArchive{}
		svc := newTestNewsroom(p, &mockCopywriter{}, &mockWriter{}, 5)
		svc.SetArchive(archive)

		report, err := svc.Run(context.Background(), driving.RunOptions{})
		require.NoError(t, err)
		assert.Equal(t, report.Written, archive.keys)
	})

	t.Run("failure aborts", func(t *testing.T) {
		svc := newTestNewsroom(p, &mockCopywriter{}, &mockWriter{}, 5)
		svc.SetArchive(&mockArchive{err: errors.New("access denied")})

		_, err := svc.Run(context.Background(), driving.RunOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "archive")
	})
}

func TestNewsroomRun_Publish(t *testing.T) {
	p := leagueFixture()
	signings(p, 2)

	t.Run("commits written articles", func(t *testing.T) {
		pub := &mockPublisher{configured: true}
		svc := newTestNewsroom(p, &mockCopywriter{}, &mockWriter{}, 5)
		svc.SetPublisher(pub)

		report, err := svc.Run(context.Background(), driving.RunOptions{Publish: true})
		require.NoError(t, err)

		require.Len(t, pub.got, 1)
		require.Len(t, pub.got[0].Files, 2)
		assert.Equal(t, "content/2025/03/07/s1.md", pub.got[0].Files[0].Path)
		assert.Equal(t, "Story s1", pub.got[0].Files[0].Content)
		require.NotNil(t, report.Published)
		assert.True(t, report.Published.Deployed)
	})

	t.Run("not configured", func(t *testing.T) {
		w := &mockWriter{}
		svc := newTestNewsroom(p, &mockCopywriter{}, w, 5)
		svc.SetPublisher(&mockPublisher{configured: false})

		_, err := svc.Run(context.Background(), driving.RunOptions{Publish: true})
		assert.ErrorIs(t, err, domain.ErrNotConfigured)
		assert.Empty(t, w.written)
	})

	t.Run("no publisher", func(t *testing.T) {
		svc := newTestNewsroom(p, &mockCopywriter{}, &mockWriter{}, 5)

		_, err := svc.Run(context.Background(), driving.RunOptions{Publish: true})
		assert.ErrorIs(t, err, domain.ErrNotConfigured)
	})

	t.Run("dry run conflicts", func(t *testing.T) {
		svc := newTestNewsroom(p, &mockCopywriter{}, &mockWriter{}, 5)
		svc.SetPublisher(&mockPublisher{configured: true})

		_, err := svc.Run(context.Background(), driving.RunOptions{Publish: true, DryRun: true})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("publish failure", func(t *testing.T) {
		svc := newTestNewsroom(p, &mockCopywriter{}, &mockWriter{}, 5)
		svc.SetPublisher(&mockPublisher{configured: true, err: errors.New("trigger deploy: 500")})

		report, err := svc.Run(context.Background(), driving.RunOptions{Publish: true})
		require.Error(t, err)
		assert.Len(t, report.Written, 2)
		assert.Nil(t, report.Published)
	})
}

func TestNewsroomRun_FetchFailure(t *testing.T) {
	p := leagueFixture()
	p.leagueErr = errors.New("status 404")

	_, err := newTestNewsroom(p, &mockCopywriter{}, &mockWriter{}, 5).Run(context.Background(), driving.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch league")
}

func TestNewsroomPreview(t *testing.T) {
	p := leagueFixture()
	signings(p, 3)
	p.failRounds = map[int]bool{19: true}
	cw := &mockCopywriter{}
	w := &mockWriter{}

	preview, err := newTestNewsroom(p, cw, w, 1).Preview(context.Background())
	require.NoError(t, err)

	assert.Len(t, preview.Events, 3)
	assert.Equal(t, []int{19}, preview.SkippedRounds)
	assert.Equal(t, "RABKL", preview.League.Name)
	assert.Empty(t, cw.calls)
	assert.Empty(t, w.written)
}

func TestNewsroomRun_TradeScenario(t *testing.T) {
	p := leagueFixture()
	p.transactions[20] = []domain.RawTransaction{{
		ID:        "900",
		Type:      domain.TransactionTrade,
		Created:   ms(time.Date(2025, 3, 6, 18, 0, 0, 0, time.UTC)),
		RosterIDs: []int{1, 2},
		Adds:      []domain.PlayerMove{{PlayerID: "p1", RosterID: 1}},
		Drops:     []domain.PlayerMove{{PlayerID: "p2", RosterID: 2}},
	}}

	settings := domain.DefaultSettings()
	settings.Newsroom.ContentDir = filepath.Join(t.TempDir(), "content")
	today := time.Date(2025, 3, 7, 10, 0, 0, 0, time.Local)
	writer := storagefile.NewArticleWriter(settings.Newsroom, func() time.Time { return today })

	svc := NewNewsroomService("L1", 5, NewFetcher(p, "nba", 6, 30), newTestNormaliser(), template.New(), writer)

	report, err := svc.Run(context.Background(), driving.RunOptions{})
	require.NoError(t, err)

	require.Len(t, report.Drafts, 1)
	trade, ok := report.Drafts[0].Event.(*domain.Trade)
	require.True(t, ok)
	assert.Len(t, trade.Actors, 2)
	assert.Len(t, trade.Assets, 2)

	title := report.Drafts[0].Copy.Title
	assert.Contains(t, title, "Lakers")
	assert.Contains(t, title, "Bob")

	require.Len(t, report.Written, 1)
	assert.Equal(t, filepath.Join(settings.Newsroom.ContentDir, "2025", "03", "07"), filepath.Dir(report.Written[0]))

	content, err := os.ReadFile(report.Written[0])
	require.NoError(t, err)
	fm, _, err := storagefile.ParseArticle(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"trade", "Lakers", "Bob"}, fm.Tags)
}

func TestNewsroomRun_SameEventOverwrites(t *testing.T) {
	p := leagueFixture()
	signings(p, 1)

	settings := domain.DefaultSettings()
	settings.Newsroom.ContentDir = t.TempDir()
	writer := storagefile.NewArticleWriter(settings.Newsroom, nil)
	svc := NewNewsroomService("L1", 5, NewFetcher(p, "nba", 6, 30), newTestNormaliser(), template.New(), writer)

	first, err := svc.Run(context.Background(), driving.RunOptions{})
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), driving.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.Written, second.Written)
	entries, err := os.ReadDir(filepath.Dir(first.Written[0]))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

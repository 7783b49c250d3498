package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

func newTestWriter(t *testing.T, now time.Time) (*ArticleWriter, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "content")
	settings := domain.DefaultSettings().Newsroom
	settings.ContentDir = dir
	return NewArticleWriter(settings, func() time.Time { return now }), dir
}

func TestArticleWriter_Write(t *testing.T) {
	runDate := time.Date(2025, 3, 7, 12, 0, 0, 0, time.Local)
	w, dir := newTestWriter(t, runDate)

	ev := &domain.Trade{
		ID:        "991",
		Timestamp: time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC),
	}
	cp := domain.Copy{Title: "Lakers and Celtics agree to trade", Body: "Body.", Tags: []string{"trade", "Lakers", "Celtics"}}

	article, err := w.Write(context.Background(), ev, cp)
	require.NoError(t, err)

	wantPath := filepath.Join(dir, "2025", "03", "07", "lakers-and-celtics-agree-to-trade-991.md")
	assert.Equal(t, wantPath, article.Path)
	assert.Equal(t, "991", article.EventID)

	data, err := os.ReadFile(wantPath)
	require.NoError(t, err)
	assert.Equal(t, article.Content, data)

	fm, body, err := ParseArticle(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"trade", "Lakers", "Celtics"}, fm.Tags)
	assert.True(t, ev.Timestamp.Equal(fm.Date), "front-matter date is the event time")
	assert.Equal(t, domain.DefaultTheme(), fm.Theme)
	assert.Equal(t, "Body.\n", body)
}

func TestArticleWriter_SameEventAndTitleOverwrites(t *testing.T) {
	w, _ := newTestWriter(t, time.Date(2025, 3, 7, 9, 0, 0, 0, time.Local))
	ctx := context.Background()

	ev := &domain.Signing{ID: "55", Adds: []string{"X"}}
	first, err := w.Write(ctx, ev, domain.Copy{Title: "Heat roster move", Body: "first"})
	require.NoError(t, err)
	second, err := w.Write(ctx, ev, domain.Copy{Title: "Heat roster move", Body: "second"})
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)

	entries, err := os.ReadDir(filepath.Dir(first.Path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, body, err := ParseArticle(mustRead(t, second.Path))
	require.NoError(t, err)
	assert.Equal(t, "second\n", body)
}

func TestArticleWriter_EventsShareRunDirectory(t *testing.T) {
	w, _ := newTestWriter(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local))
	ctx := context.Background()

	a, err := w.Write(ctx, &domain.Trade{ID: "1", Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}, domain.Copy{Title: "A"})
	require.NoError(t, err)
	b, err := w.Write(ctx, &domain.Trade{ID: "2", Timestamp: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)}, domain.Copy{Title: "B"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Dir(a.Path), filepath.Dir(b.Path))
}

func TestArticleWriter_NilTagsRenderEmptyList(t *testing.T) {
	w, _ := newTestWriter(t, time.Now())

	article, err := w.Write(context.Background(), &domain.Trade{ID: "3"}, domain.Copy{Title: "T"})
	require.NoError(t, err)
	assert.Contains(t, string(article.Content), "tags: []\n")
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestArticleWriter_EventIDStaysInDayDir(t *testing.T) {
	runDate := time.Date(2025, 3, 7, 12, 0, 0, 0, time.Local)
	w, dir := newTestWriter(t, runDate)

	ev := &domain.Signing{ID: "../../escape", Timestamp: runDate}
	article, err := w.Write(context.Background(), ev, domain.Copy{Title: "Heat roster move", Body: "Body."})
	require.NoError(t, err)

	dayDir := filepath.Join(dir, "2025", "03", "07")
	assert.Equal(t, dayDir, filepath.Dir(article.Path))
	assert.Equal(t, "heat-roster-move-escape.md", filepath.Base(article.Path))
	assert.Equal(t, "../../escape", article.EventID)
}

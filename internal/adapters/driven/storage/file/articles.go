package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// Ensure ArticleWriter implements the interface.
var _ driven.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter writes one Markdown file per event under
// {dir}/{YYYY}/{MM}/{DD}, dated by the run clock rather than the event.
type ArticleWriter struct {
	dir       string
	heroImage string
	brandLogo string
	theme     domain.Theme
	now       func() time.Time
}

// NewArticleWriter creates a writer from the newsroom settings.
// now may be nil.
func NewArticleWriter(settings domain.NewsroomSettings, now func() time.Time) *ArticleWriter {
	if now == nil {
		now = time.Now
	}
	dir := settings.ContentDir
	if dir == "" {
		dir = domain.DefaultContentDir
	}
	return &ArticleWriter{
		dir:       dir,
		heroImage: settings.HeroImage,
		brandLogo: settings.BrandLogo,
		theme:     settings.Theme,
		now:       now,
	}
}

// DayDir returns the directory articles written at t land in.
func (w *ArticleWriter) DayDir(t time.Time) string {
	return filepath.Join(w.dir,
		fmt.Sprintf("%04d", t.Year()),
		fmt.Sprintf("%02d", int(t.Month())),
		fmt.Sprintf("%02d", t.Day()),
	)
}

// Write renders the article and writes it, replacing any existing file.
func (w *ArticleWriter) Write(_ context.Context, event domain.Event, cp domain.Copy) (*domain.Article, error) {
	dir := w.DayDir(w.now())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create article directory: %w", err)
	}

	tags := cp.Tags
	if tags == nil {
		tags = []string{}
	}
	fm := domain.FrontMatter{
		Title:     cp.Title,
		Date:      event.OccurredAt(),
		Tags:      tags,
		HeroImage: w.heroImage,
		BrandLogo: w.brandLogo,
		Theme:     w.theme,
	}

	content, err := RenderArticle(fm, cp.Body)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, Stem(cp.Title, event.EventID())+".md")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, fmt.Errorf("write article: %w", err)
	}

	return &domain.Article{
		Path:        path,
		EventID:     event.EventID(),
		FrontMatter: fm,
		Content:     content,
	}, nil
}

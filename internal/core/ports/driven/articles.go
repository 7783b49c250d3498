package driven

import (
	"context"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// ArticleWriter persists an event and its copy as a content file.
type ArticleWriter interface {
	// Write renders and stores the article, overwriting any file at the same path.
	Write(ctx context.Context, event domain.Event, cp domain.Copy) (*domain.Article, error)
}

// ArticleArchive mirrors written articles to secondary storage.
type ArticleArchive interface {
	// Put stores the article under its content path.
	Put(ctx context.Context, article *domain.Article) error
}

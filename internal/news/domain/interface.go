package domain

//go:generate mockgen -destination=../../mocks/mock_article_repository.go -package=mocks github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain ArticleRepository
//go:generate mockgen -destination=../../mocks/mock_news_provider.go -package=mocks github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain NewsProvider

import "context"

type ArticleRepository interface {
	// Mark upserts the (user, article) row and sets the flag named by kind.
	Mark(ctx context.Context, article *MarkedArticle, kind MarkKind) (*MarkedArticle, error)
	ListMarked(ctx context.Context, userID string, kind MarkKind) ([]MarkedArticle, error)
}

type NewsProvider interface {
	TopHeadlines(ctx context.Context, category string) ([]Article, error)
	Search(ctx context.Context, query string) ([]Article, error)
}

// ArticleCache stores upstream responses for a fixed TTL.
type ArticleCache interface {
	Get(ctx context.Context, key string) ([]Article, bool)
	Set(ctx context.Context, key string, articles []Article)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/dto"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCategory = "general"

	headlinesKeyPrefix = "news_"
	searchKeyPrefix    = "search_"

	// upstream fan-out per headlines request
	maxParallelFetches = 4

	DefaultFetchTimeout = 15 * time.Second
)

// NewsService serves upstream news through a TTL cache and keeps per-user
// read/favorite flags.
type NewsService struct {
	provider domain.NewsProvider
	cache    domain.ArticleCache
	repo     domain.ArticleRepository
	validate *validator.Validate
	group    singleflight.Group

	fetchTimeout time.Duration
}

type NewsOption func(*NewsService)

// WithFetchTimeout bounds a shared upstream fetch. It replaces the caller's
// deadline, since the fetch outlives any single request.
func WithFetchTimeout(d time.Duration) NewsOption {
	return func(s *NewsService) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

func NewNewsService(provider domain.NewsProvider, cache domain.ArticleCache, repo domain.ArticleRepository, opts ...NewsOption) *NewsService {
	s := &NewsService{
		provider:     provider,
		cache:        cache,
		repo:         repo,
		validate:     validator.New(),
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeCategories lowercases, trims and de-duplicates categories, keeping
// their order. An empty result becomes the default category.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return []string{DefaultCategory}
	}
	return out
}

func HeadlinesCacheKey(categories []string) string {
	return headlinesKeyPrefix + strings.Join(categories, "_")
}

func SearchCacheKey(query string) string {
	return searchKeyPrefix + query
}

// GetTopHeadlines returns the merged headlines for the given categories,
// de-duplicated by URL in category order.
func (s *NewsService) GetTopHeadlines(ctx context.Context, categories []string) ([]domain.Article, error) {
	categories = NormalizeCategories(categories)
	key := HeadlinesCacheKey(categories)

	return s.cached(ctx, key, func(ctx context.Context) ([]domain.Article, error) {
		results := make([][]domain.Article, len(categories))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxParallelFetches)
		for i, category := range categories {
			g.Go(func() error {
				articles, err := s.provider.TopHeadlines(gctx, category)
				if err != nil {
					return err
				}
				results[i] = articles
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, s.fail(ctx, "top_headlines", autherror.Internal("NEWS_FETCH_FAILED", "Failed to fetch news", err), err)
		}

		return mergeByURL(results), nil
	})
}

func (s *NewsService) Search(ctx context.Context, query string) ([]domain.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, autherror.ErrInvalidQuery
	}

	return s.cached(ctx, SearchCacheKey(query), func(ctx context.Context) ([]domain.Article, error) {
		articles, err := s.provider.Search(ctx, query)
		if err != nil {
			return nil, s.fail(ctx, "search", autherror.Internal("NEWS_SEARCH_FAILED", "Failed to search news", err), err)
		}
		return articles, nil
	})
}

// MarkArticle sets the read or favorite flag on (userID, articleID), creating
// the record on first use. Setting a flag twice is a no-op.
func (s *NewsService) MarkArticle(ctx context.Context, userID, articleID string, kind domain.MarkKind, input dto.MarkInput) (*domain.MarkedArticle, error) {
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return nil, autherror.ErrValidation.WithDetails("Article id is required")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, autherror.ErrValidation.WithDetails("Invalid article metadata")
	}

	article, err := s.repo.Mark(ctx, &domain.MarkedArticle{
		ArticleID:   articleID,
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
		URLToImage:  input.URLToImage,
		PublishedAt: input.PublishedAt,
	}, kind)
	if err != nil {
		return nil, s.fail(ctx, "mark_article", autherror.Internal("NEWS_MARK_FAILED", "Failed to mark article", err), err)
	}
	return article, nil
}

func (s *NewsService) ListMarked(ctx context.Context, userID string, kind domain.MarkKind) ([]domain.MarkedArticle, error) {
	articles, err := s.repo.ListMarked(ctx, userID, kind)
	if err != nil {
		return nil, s.fail(ctx, "list_marked", autherror.Internal("NEWS_LIST_FAILED", "Failed to get marked articles", err), err)
	}
	return articles, nil
}

// cached serves key from the cache, otherwise runs fetch once per key across
// concurrent callers and caches a successful result. The fetch is detached
// from ctx: a caller that goes away stops waiting but does not fail the
// others sharing the fetch.
func (s *NewsService) cached(ctx context.Context, key string, fetch func(context.Context) ([]domain.Article, error)) ([]domain.Article, error) {
	if articles, ok := s.cache.Get(ctx, key); ok {
		return articles, nil
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		articles, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(fetchCtx, key, articles)
		return articles, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.Article), nil
	}
}

// fail keeps classified errors (missing key, open circuit, bad kind) and
// replaces anything else with fallback.
func (s *NewsService) fail(ctx context.Context, op string, fallback *autherror.AppError, err error) error {
	appErr := fallback
	var classified *autherror.AppError
	if errors.As(err, &classified) {
		appErr = classified
	}

	logger := logging.Ctx(ctx)
	event := logger.Warn()
	if appErr.Kind == autherror.KindInternal {
		event = logger.Error()
	}
	event.Err(err).Str("op", op).Str("code", appErr.Code).Msg(appErr.Message)
	return appErr
}

func mergeByURL(results [][]domain.Article) []domain.Article {
	seen := make(map[string]struct{})
	merged := []domain.Article{}
	for _, articles := range results {
		for _, a := range articles {
			if a.URL != "" {
				if _, ok := seen[a.URL]; ok {
					continue
				}
				seen[a.URL] = struct{}{}
			}
			merged = append(merged, a)
		}
	}
	return merged
}

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/metrics"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
)

const redisKeyPrefix = "news:"

// RedisCache shares cached upstream responses between instances. Redis
// failures degrade to cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ domain.ArticleCache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the server is reachable.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]domain.Article, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("news cache read failed")
		}
		metrics.RecordCacheLookup(false)
		return nil, false
	}

	var articles []domain.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("news cache entry is corrupt")
		metrics.RecordCacheLookup(false)
		return nil, false
	}

	metrics.RecordCacheLookup(true)
	return articles, true
}

func (c *RedisCache) Set(ctx context.Context, key string, articles []domain.Article) {
	data, err := json.Marshal(articles)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("news cache encode failed")
		return
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("news cache write failed")
	}
}

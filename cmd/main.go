package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/config"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/db"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/handler"
	authrepo "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/repository/postgres"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/service"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/cache"
	newsdomain "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	newshandler "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/handler"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/provider"
	newsrepo "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/repository/postgres"
	newsservice "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/service"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/server"
	"github.com/gofiber/fiber/v2"
)

const (
	appName              = "news-aggregator-api"
	shutdownTimeout      = 10 * time.Second
	cleanupInterval      = 10 * time.Minute
	cacheCleanupInterval = time.Minute
)

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
	logging.Info().Msg("server stopped")
}

// run owns every resource it opens, so deferred cleanup happens before main
// decides the exit code.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, cfg.DBURL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbPool.Close()

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshedAccessExpiryMin, cfg.RefreshExpiryMin)
	userService := service.NewUserService(authrepo.NewPostgresRepository(dbPool), tokenService, service.NewBcryptHasher(cfg.BcryptCost))
	authHandler := handler.NewAuthHandler(userService, tokenService, handler.CookieConfig{Secure: cfg.IsProduction()})

	articleCache := newArticleCache(ctx, cfg)
	newsProvider := provider.NewBreakerProvider(
		provider.NewNewsAPIClient(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.UpstreamTimeout()),
		provider.DefaultBreakerConfig(),
	)
	if cfg.NewsAPIKey == "" {
		logging.Warn().Msg("NEWS_API_KEY is not set, news endpoints will fail")
	}
	// one shared fetch may run a second batch of category requests
	newsService := newsservice.NewNewsService(newsProvider, articleCache, newsrepo.NewPostgresRepository(dbPool),
		newsservice.WithFetchTimeout(2*cfg.UpstreamTimeout()))

	app := server.New(server.Config{AppName: appName, CookieKey: cfg.CookieKey()})

	var authMiddleware []fiber.Handler
	if cfg.AuthRateLimitPerMinute > 0 {
		limiter := server.NewRateLimiter(cfg.AuthRateLimitPerMinute)
		go limiter.Run(ctx, cleanupInterval)
		authMiddleware = append(authMiddleware, limiter.Handler())
	}

	handler.RegisterRoutes(app, authHandler, authMiddleware...)
	newshandler.RegisterRoutes(app, newshandler.NewNewsHandler(newsService), authHandler.RequireAuth())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logging.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// newArticleCache prefers Redis when REDIS_URL is set and falls back to the
// in-process cache if it is unset or unreachable.
func newArticleCache(ctx context.Context, cfg *config.Config) newsdomain.ArticleCache {
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			logging.Info().Msg("using redis news cache")
			return cache.NewRedisCache(client, cfg.NewsCacheTTL())
		}
		logging.Warn().Err(err).Msg("redis unavailable, using in-memory news cache")
	}

	memory := cache.NewMemoryCache(cfg.NewsCacheTTL())
	go memory.Run(ctx, cacheCleanupInterval)
	return memory
}

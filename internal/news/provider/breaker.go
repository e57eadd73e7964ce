package provider

import (
	"context"
	"errors"
	"time"

	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/metrics"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerConfig struct {
	Name string
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial request.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of trial requests allowed while half-open.
	HalfOpenRequests uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:                "newsapi",
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		HalfOpenRequests:    1,
	}
}

// BreakerProvider guards a NewsProvider with a circuit breaker. While the
// circuit is open calls fail fast with ErrUpstreamUnavailable.
type BreakerProvider struct {
	next domain.NewsProvider
	cb   *gobreaker.CircuitBreaker[[]domain.Article]
	name string
}

var _ domain.NewsProvider = (*BreakerProvider)(nil)

func NewBreakerProvider(next domain.NewsProvider, cfg BreakerConfig) *BreakerProvider {
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]domain.Article](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerProvider{next: next, cb: cb, name: cfg.Name}
}

func (p *BreakerProvider) TopHeadlines(ctx context.Context, category string) ([]domain.Article, error) {
	return p.execute(func() ([]domain.Article, error) {
		return p.next.TopHeadlines(ctx, category)
	})
}

func (p *BreakerProvider) Search(ctx context.Context, query string) ([]domain.Article, error) {
	return p.execute(func() ([]domain.Article, error) {
		return p.next.Search(ctx, query)
	})
}

func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}

func (p *BreakerProvider) execute(fn func() ([]domain.Article, error)) ([]domain.Article, error) {
	articles, err := p.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "rejected").Inc()
			return nil, autherror.ErrUpstreamUnavailable.Wrap(err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(p.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(p.name, "success").Inc()
	return articles, nil
}

// isBreakerSuccess keeps local failures from tripping the circuit: a missing
// key or a cancelled caller says nothing about upstream health.
func isBreakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, autherror.ErrNewsAPIKeyMissing) ||
		errors.Is(err, context.Canceled)
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Package provider talks to the upstream news API.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	"github.com/goccy/go-json"
)

const (
	topHeadlinesPath = "/top-headlines"
	everythingPath   = "/everything"

	defaultLanguage = "en"
	defaultCountry  = "us"
	defaultSortBy   = "relevancy"

	maxErrorBody = 4 << 10
)

// UpstreamError is a non-success answer from the news API.
type UpstreamError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("newsapi: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []domain.Article `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

// NewsAPIClient calls newsapi.org v2. The key is checked per request so a
// missing key fails the request, not startup.
type NewsAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ domain.NewsProvider = (*NewsAPIClient)(nil)

func NewNewsAPIClient(baseURL, apiKey string, timeout time.Duration) *NewsAPIClient {
	return &NewsAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *NewsAPIClient) TopHeadlines(ctx context.Context, category string) ([]domain.Article, error) {
	params := url.Values{}
	params.Set("category", category)
	params.Set("language", defaultLanguage)
	params.Set("country", defaultCountry)
	return c.get(ctx, topHeadlinesPath, params)
}

func (c *NewsAPIClient) Search(ctx context.Context, query string) ([]domain.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", defaultLanguage)
	params.Set("sortBy", defaultSortBy)
	return c.get(ctx, everythingPath, params)
}

func (c *NewsAPIClient) get(ctx context.Context, path string, params url.Values) ([]domain.Article, error) {
	if c.apiKey == "" {
		return nil, autherror.ErrNewsAPIKeyMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		upstreamErr := &UpstreamError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload newsAPIResponse
		if json.Unmarshal(body, &payload) == nil && payload.Code != "" {
			upstreamErr.Code = payload.Code
			upstreamErr.Message = payload.Message
		}
		return nil, upstreamErr
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("newsapi: decode %s: %w", path, err)
	}
	if payload.Status != "ok" {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Code: payload.Code, Message: payload.Message}
	}

	if payload.Articles == nil {
		return []domain.Article{}, nil
	}
	return payload.Articles, nil
}

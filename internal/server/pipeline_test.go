package server_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	authdomain "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/domain"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/dto"
	authhandler "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/handler"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/service"
	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/mocks"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/cache"
	newsdomain "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	newshandler "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/handler"
	newsservice "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/service"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/server"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessSecret  = "access-secret"
	refreshSecret = "refresh-secret"
)

type userStore struct {
	mu    sync.Mutex
	users map[string]authdomain.User
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*authdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*authdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *userStore) Create(_ context.Context, user *authdomain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return autherror.ErrEmailAlreadyInUse
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *userStore) UpdateProfile(_ context.Context, id string, update authdomain.ProfileUpdate) (*authdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u.Username, u.Email = update.Username, update.Email
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	s.users[id] = u
	return &u, nil
}

type pipeline struct {
	app      *fiber.App
	key      string
	provider *mocks.MockNewsProvider
}

// newPipeline assembles the same middleware stack and route groups as cmd/main.go.
func newPipeline(t *testing.T) pipeline {
	t.Helper()
	ctrl := gomock.NewController(t)

	tokens := service.NewTokenService(accessSecret, refreshSecret, 7*24*60, 15, 30*24*60)
	users := service.NewUserService(&userStore{users: map[string]authdomain.User{}}, tokens, service.NewBcryptHasher(bcrypt.MinCost))
	authHandler := authhandler.NewAuthHandler(users, tokens, authhandler.CookieConfig{})

	provider := mocks.NewMockNewsProvider(ctrl)
	news := newsservice.NewNewsService(provider, cache.NewMemoryCache(time.Hour), mocks.NewMockArticleRepository(ctrl))

	key := encryptcookie.GenerateKey()
	app := server.New(server.Config{AppName: "test", CookieKey: key})
	authhandler.RegisterRoutes(app, authHandler)
	newshandler.RegisterRoutes(app, newshandler.NewNewsHandler(news), authHandler.RequireAuth())

	return pipeline{app: app, key: key, provider: provider}
}

func (p pipeline) send(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := p.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (p pipeline) encrypt(t *testing.T, value string) string {
	t.Helper()
	encrypted, err := encryptcookie.EncryptCookie(value, p.key)
	require.NoError(t, err)
	return encrypted
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestPipeline_RegisterLoginRefreshNews(t *testing.T) {
	p := newPipeline(t)

	resp := p.send(t, http.MethodPost, "/v1/auth/register", dto.RegisterInput{Username: "a", Email: "a@x.com", Password: "secret123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	userID := decodeJSON[dto.RegisterOutput](t, resp).UserID
	require.NotEmpty(t, userID)

	resp = p.send(t, http.MethodPost, "/v1/auth/login", dto.LoginInput{Email: "a@x.com", Password: "secret123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "7d", decodeJSON[dto.LoginOutput](t, resp).ExpiresIn)

	access := cookieNamed(resp, authhandler.AccessTokenCookie)
	refresh := cookieNamed(resp, authhandler.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.NotContains(t, access.Value, ".", "cookie value is encrypted, not a bare JWT")

	p.provider.EXPECT().TopHeadlines(gomock.Any(), "general").
		Return([]newsdomain.Article{{Title: "A", URL: "https://example.com/a"}}, nil).Times(1)

	resp = p.send(t, http.MethodGet, "/v1/news", nil, &http.Cookie{Name: access.Name, Value: access.Value})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeJSON[[]newsdomain.Article](t, resp), 1)

	resp = p.send(t, http.MethodPost, "/v1/auth/refresh", nil, &http.Cookie{Name: refresh.Name, Value: refresh.Value})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "15m", decodeJSON[dto.RefreshOutput](t, resp).ExpiresIn)

	refreshed := cookieNamed(resp, authhandler.AccessTokenCookie)
	require.NotNil(t, refreshed)
	assert.NotEqual(t, access.Value, refreshed.Value)
	assert.Equal(t, int((15 * time.Minute).Seconds()), refreshed.MaxAge)

	resp = p.send(t, http.MethodGet, "/v1/news", nil, &http.Cookie{Name: refreshed.Name, Value: refreshed.Value})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPipeline_TokenFailures(t *testing.T) {
	p := newPipeline(t)

	wrongSecret := service.NewTokenService("other-secret", "other-refresh", 60, 15, 60)
	forgedAccess, _, err := wrongSecret.GenerateAccessToken("user-1", time.Hour)
	require.NoError(t, err)
	forgedRefresh, _, err := wrongSecret.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	past := service.NewTokenService(accessSecret, refreshSecret, 60, 15, 60,
		service.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	expiredAccess, _, err := past.GenerateAccessToken("user-1", time.Hour)
	require.NoError(t, err)
	expiredRefresh, _, err := past.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		method string
		cookie *http.Cookie
		code   string
	}{
		{"no access cookie", "/v1/news/read", http.MethodGet, nil, "AUTH_REQUIRED"},
		{"garbage access", "/v1/news/read", http.MethodGet, &http.Cookie{Name: authhandler.AccessTokenCookie, Value: "not-a-jwt"}, "AUTH_INVALID_TOKEN"},
		{"encrypted garbage access", "/v1/news/read", http.MethodGet, &http.Cookie{Name: authhandler.AccessTokenCookie, Value: p.encrypt(t, "not-a-jwt")}, "AUTH_INVALID_TOKEN"},
		{"wrong secret access", "/v1/news/read", http.MethodGet, &http.Cookie{Name: authhandler.AccessTokenCookie, Value: p.encrypt(t, forgedAccess)}, "AUTH_INVALID_TOKEN"},
		{"unencrypted wrong secret access", "/v1/news/read", http.MethodGet, &http.Cookie{Name: authhandler.AccessTokenCookie, Value: forgedAccess}, "AUTH_INVALID_TOKEN"},
		{"expired access", "/v1/news/read", http.MethodGet, &http.Cookie{Name: authhandler.AccessTokenCookie, Value: p.encrypt(t, expiredAccess)}, "AUTH_TOKEN_EXPIRED"},
		{"no refresh cookie", "/v1/auth/refresh", http.MethodPost, nil, "AUTH_NO_REFRESH_TOKEN"},
		{"garbage refresh", "/v1/auth/refresh", http.MethodPost, &http.Cookie{Name: authhandler.RefreshTokenCookie, Value: "not-a-jwt"}, "AUTH_INVALID_TOKEN"},
		{"wrong secret refresh", "/v1/auth/refresh", http.MethodPost, &http.Cookie{Name: authhandler.RefreshTokenCookie, Value: p.encrypt(t, forgedRefresh)}, "AUTH_INVALID_TOKEN"},
		{"expired refresh", "/v1/auth/refresh", http.MethodPost, &http.Cookie{Name: authhandler.RefreshTokenCookie, Value: p.encrypt(t, expiredRefresh)}, "AUTH_TOKEN_EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.cookie != nil {
				cookies = append(cookies, tt.cookie)
			}

			resp := p.send(t, tt.method, tt.path, nil, cookies...)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

			out := decodeJSON[autherror.Response](t, resp)
			assert.Equal(t, tt.code, out.Code)
			assert.False(t, strings.Contains(out.Details, "signature"), "internal cause is not exposed")
		})
	}
}

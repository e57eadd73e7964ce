package config

import (
	"crypto/sha256"
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/joho/godotenv"
)

const (
	DefaultPort                     = "3000"
	DefaultAccessTokenExpiryMin     = 7 * 24 * 60
	DefaultRefreshedAccessExpiryMin = 15
	DefaultRefreshTokenExpiryMin    = 30 * 24 * 60
	DefaultBcryptCost               = 10
	DefaultNewsAPIBaseURL           = "https://newsapi.org/v2"
	DefaultNewsCacheTTLSeconds      = 3600
	DefaultUpstreamTimeoutSeconds   = 10
	DefaultAuthRateLimitPerMinute   = 30
	DefaultLogLevel                 = "info"
	DefaultLogFormat                = "json"
	EnvProduction                   = "production"
	envDevelopment                  = "development"
	devConfigFile                   = ".env.dev"
	prodConfigFile                  = ".env.prod"
	configDir                       = "config"
	missingRequiredConfigLogMessage = "Missing required config: "
	invalidConfigValueLogMessage    = "Invalid config value, using default"
)

// Config is built once at startup and treated as read-only afterwards.
type Config struct {
	Env                      string
	Port                     string
	DBURL                    string
	AccessTokenSecret        string
	RefreshTokenSecret       string
	SessionSecret            string
	NewsAPIKey               string
	NewsAPIBaseURL           string
	RedisURL                 string
	AccessExpiryMin          int
	RefreshedAccessExpiryMin int
	RefreshExpiryMin         int
	BcryptCost               int
	NewsCacheTTLSeconds      int
	UpstreamTimeoutSeconds   int
	AuthRateLimitPerMinute   int
	LogLevel                 string
	LogFormat                string
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) NewsCacheTTL() time.Duration {
	return time.Duration(c.NewsCacheTTLSeconds) * time.Second
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// CookieKey derives the AES-256 key used to encrypt auth cookies from SESSION_SECRET.
func (c *Config) CookieKey() string {
	sum := sha256.Sum256([]byte(c.SessionSecret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Load reads configuration from the process environment, falling back to
// config/.env.dev (or config/.env.prod when ENV=production) and then defaults.
// Missing required keys are fatal.
func Load() *Config {
	env := getEnv("ENV", envDevelopment)

	fileName := devConfigFile
	if env == EnvProduction {
		fileName = prodConfigFile
	}

	fileValues, err := godotenv.Read(filepath.Join(configDir, fileName))
	if err != nil {
		fileValues = map[string]string{}
	}

	l := &loader{file: fileValues}

	return &Config{
		Env:                      env,
		Port:                     l.get("PORT", DefaultPort),
		DBURL:                    l.must("DB_URL"),
		AccessTokenSecret:        l.must("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:       l.must("REFRESH_TOKEN_SECRET"),
		SessionSecret:            l.must("SESSION_SECRET"),
		NewsAPIKey:               l.get("NEWS_API_KEY", ""),
		NewsAPIBaseURL:           l.get("NEWS_API_BASE_URL", DefaultNewsAPIBaseURL),
		RedisURL:                 l.get("REDIS_URL", ""),
		AccessExpiryMin:          l.getInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin, 1),
		RefreshedAccessExpiryMin: l.getInt("REFRESHED_ACCESS_TOKEN_EXPIRY", DefaultRefreshedAccessExpiryMin, 1),
		RefreshExpiryMin:         l.getInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin, 1),
		BcryptCost:               l.getInt("BCRYPT_COST", DefaultBcryptCost, 1),
		NewsCacheTTLSeconds:      l.getInt("NEWS_CACHE_TTL_SECONDS", DefaultNewsCacheTTLSeconds, 1),
		UpstreamTimeoutSeconds:   l.getInt("UPSTREAM_TIMEOUT_SECONDS", DefaultUpstreamTimeoutSeconds, 1),
		AuthRateLimitPerMinute:   l.getInt("AUTH_RATE_LIMIT_PER_MINUTE", DefaultAuthRateLimitPerMinute, 0),
		LogLevel:                 l.get("LOG_LEVEL", DefaultLogLevel),
		LogFormat:                l.get("LOG_FORMAT", DefaultLogFormat),
	}
}

type loader struct {
	file map[string]string
}

func (l *loader) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return l.file[key]
}

func (l *loader) get(key, defaultVal string) string {
	if value := l.lookup(key); value != "" {
		return value
	}
	return defaultVal
}

func (l *loader) must(key string) string {
	if value := l.lookup(key); value != "" {
		return value
	}
	logging.Fatal().Str("key", key).Msg(missingRequiredConfigLogMessage + key)
	return ""
}

// getInt parses key as an integer no smaller than minVal. Unparseable or
// out-of-range values fall back to defaultVal with a warning.
func (l *loader) getInt(key string, defaultVal, minVal int) int {
	valStr := l.lookup(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < minVal {
		logging.Warn().Str("key", key).Str("value", valStr).Int("default", defaultVal).Msg(invalidConfigValueLogMessage)
		return defaultVal
	}
	return val
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenGenerator interface {
	GenerateAccessToken(userID string, ttl time.Duration) (string, time.Time, error)
	GenerateRefreshToken(userID string) (string, time.Time, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshedAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
}

// TokenService issues HS256 tokens. Access and refresh tokens are signed
// with different secrets so one can never be replayed as the other.
type TokenService struct {
	AccessTokenSecret          string
	RefreshTokenSecret         string
	AccessTokenExpiry          time.Duration
	RefreshedAccessTokenExpiry time.Duration
	RefreshTokenExpiry         time.Duration

	now func() time.Time
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(ts *TokenService) {
		ts.now = now
	}
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshedAccessMinutes, refreshMinutes int, opts ...TokenOption) *TokenService {
	ts := &TokenService{
		AccessTokenSecret:          accessSecret,
		RefreshTokenSecret:         refreshSecret,
		AccessTokenExpiry:          time.Duration(accessMinutes) * time.Minute,
		RefreshedAccessTokenExpiry: time.Duration(refreshedAccessMinutes) * time.Minute,
		RefreshTokenExpiry:         time.Duration(refreshMinutes) * time.Minute,
		now:                        time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

func (ts *TokenService) GenerateAccessToken(userID string, ttl time.Duration) (string, time.Time, error) {
	return ts.sign(userID, ttl, ts.AccessTokenSecret)
}

func (ts *TokenService) GenerateRefreshToken(userID string) (string, time.Time, error) {
	return ts.sign(userID, ts.RefreshTokenExpiry, ts.RefreshTokenSecret)
}

func (ts *TokenService) sign(userID string, ttl time.Duration, secret string) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(ttl)

	claims := JWTCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// GetAccessTokenExpiry is the lifetime of login-issued access tokens.
func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

// GetRefreshedAccessTokenExpiry is the lifetime of access tokens minted by the refresh flow.
func (ts *TokenService) GetRefreshedAccessTokenExpiry() time.Duration {
	return ts.RefreshedAccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}

func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.AccessTokenSecret)
}

func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.RefreshTokenSecret)
}

// verify returns autherror.ErrTokenExpired for expired tokens,
// autherror.ErrTokenInvalid for bad signatures or structure and
// autherror.ErrAuthFailure for anything else (e.g. not yet valid).
func (ts *TokenService) verify(tokenString, secret string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(ts.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, classifyTokenError(err)
	}

	if !token.Valid {
		return nil, autherror.ErrTokenInvalid
	}

	return claims, nil
}

func classifyTokenError(err error) *autherror.AppError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return autherror.ErrTokenExpired.Wrap(err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return autherror.ErrTokenInvalid.Wrap(err)
	default:
		return autherror.ErrAuthFailure.Wrap(err)
	}
}

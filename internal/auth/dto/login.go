package dto

import "time"

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is what a successful login hands to the transport layer; the
// tokens travel as cookies, never in the response body.
type TokenPair struct {
	UserID           string
	AccessToken      string
	RefreshToken     string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type LoginOutput struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	ExpiresIn string `json:"expiresIn"`
}

type RefreshResult struct {
	AccessToken string
	ExpiresIn   time.Duration
}

type RefreshOutput struct {
	Message   string `json:"message"`
	ExpiresIn string `json:"expiresIn"`
}

package errors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUserExists
	KindUserNotFound
	KindInvalidCredentials
	KindAuthRequired
	KindTokenInvalid
	KindTokenExpired
	KindMalformedPayload
	KindAuthFailure
	KindRateLimited
	KindUnavailable
)

// AppError is the only error shape that crosses the HTTP boundary. Err holds
// the internal cause and is never rendered to clients.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Details string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Details
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Response is the JSON body rendered for a failed request.
type Response struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code"`
}

// Response drops the internal cause; only client-safe fields are kept.
func (e *AppError) Response() Response {
	return Response{Error: e.Message, Details: e.Details, Code: e.Code}
}

// Status maps the error kind to its HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUserExists:
		return http.StatusConflict
	case KindUserNotFound:
		return http.StatusNotFound
	case KindInvalidCredentials, KindAuthRequired, KindTokenInvalid,
		KindTokenExpired, KindMalformedPayload, KindAuthFailure:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, code, message, details string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Details: details}
}

// WithDetails returns a copy of e carrying different details.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap returns a copy of e that records cause for server-side logging.
func (e *AppError) Wrap(cause error) *AppError {
	cp := *e
	cp.Err = cause
	return &cp
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(code, message string, cause error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    code,
		Message: message,
		Details: "Internal server error",
		Err:     cause,
	}
}

// As extracts the AppError from err, falling back to a generic internal error.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("INTERNAL_ERROR", "Something went wrong", err)
}

// KindOf reports the kind of err, KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrValidation         = New(KindValidation, "AUTH_VALIDATION_ERROR", "Validation error", "All fields are required")
	ErrEmailAlreadyInUse  = New(KindUserExists, "AUTH_USER_EXISTS", "User already exists", "Email is already registered")
	ErrUserNotFound       = New(KindUserNotFound, "AUTH_USER_NOT_FOUND", "User not found", "The specified user does not exist")
	ErrInvalidCredentials = New(KindInvalidCredentials, "AUTH_INVALID_CREDENTIALS", "Authentication failed", "Invalid credentials")
	ErrAuthRequired       = New(KindAuthRequired, "AUTH_REQUIRED", "Authentication required", "No auth token provided")
	ErrNoRefreshToken     = New(KindAuthRequired, "AUTH_NO_REFRESH_TOKEN", "Authentication required", "No refresh token provided")
	ErrTokenInvalid       = New(KindTokenInvalid, "AUTH_INVALID_TOKEN", "Invalid token", "Token verification failed")
	ErrTokenExpired       = New(KindTokenExpired, "AUTH_TOKEN_EXPIRED", "Token expired", "Please login again")
	ErrMalformedPayload   = New(KindMalformedPayload, "AUTH_INVALID_TOKEN_PAYLOAD", "Invalid token", "Malformed token payload")
	ErrAuthFailure        = New(KindAuthFailure, "AUTH_FAILURE", "Authentication failed", "Token could not be accepted")
	ErrTooManyRequests    = New(KindRateLimited, "RATE_LIMITED", "Too many requests", "Please retry later")

	ErrNewsAPIKeyMissing   = New(KindInternal, "NEWS_API_KEY_MISSING", "News API key not configured", "Internal server error")
	ErrInvalidMarkKind     = New(KindValidation, "NEWS_INVALID_KIND", "Validation error", "Kind must be read or favorite")
	ErrInvalidQuery        = New(KindValidation, "NEWS_VALIDATION_ERROR", "Validation error", "Search query is required")
	ErrUpstreamUnavailable = New(KindUnavailable, "NEWS_UPSTREAM_UNAVAILABLE", "News provider unavailable", "Please retry later")
)

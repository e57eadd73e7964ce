package service

import (
	"context"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/domain"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/dto"
	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	opRegister      = "register"
	opLogin         = "login"
	opRefresh       = "refresh"
	opUpdateProfile = "update_profile"

	outcomeSuccess = "success"
)

// UserService holds no per-session state; every operation is independent
// given the repository and token generator.
type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	hasher       PasswordHasher
	validate     *validator.Validate
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, hasher PasswordHasher) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		hasher:       hasher,
		validate:     validator.New(),
	}
}

// Register creates a user and returns its id.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail(ctx, opRegister, autherror.ErrValidation.WithDetails("All fields are required"))
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", s.fail(ctx, opRegister, autherror.Internal("AUTH_REGISTRATION_FAILED", "Registration failed", err))
	}
	if existingUser != nil {
		return "", s.fail(ctx, opRegister, autherror.ErrEmailAlreadyInUse)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", s.fail(ctx, opRegister, autherror.Internal("AUTH_REGISTRATION_FAILED", "Registration failed", err))
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The store enforces uniqueness; a concurrent register may lose the race here.
		if autherror.KindOf(err) == autherror.KindUserExists {
			return "", s.fail(ctx, opRegister, autherror.ErrEmailAlreadyInUse)
		}
		return "", s.fail(ctx, opRegister, autherror.Internal("AUTH_REGISTRATION_FAILED", "Registration failed", err))
	}

	metrics.RecordAuth(opRegister, outcomeSuccess)
	return user.ID, nil
}

// Login checks credentials and issues an access/refresh token pair. Unknown
// email and wrong password fail identically.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenPair, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, s.fail(ctx, opLogin, autherror.ErrValidation.WithDetails("Email and password are required"))
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, s.fail(ctx, opLogin, autherror.Internal("AUTH_LOGIN_FAILED", "Login failed", err))
	}

	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, s.fail(ctx, opLogin, autherror.ErrInvalidCredentials)
	}

	accessTTL := s.tokenService.GetAccessTokenExpiry()
	accessToken, _, err := s.tokenService.GenerateAccessToken(user.ID, accessTTL)
	if err != nil {
		return nil, s.fail(ctx, opLogin, autherror.Internal("AUTH_LOGIN_FAILED", "Login failed", err))
	}

	refreshToken, _, err := s.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, s.fail(ctx, opLogin, autherror.Internal("AUTH_LOGIN_FAILED", "Login failed", err))
	}

	metrics.RecordAuth(opLogin, outcomeSuccess)
	return &dto.TokenPair{
		UserID:           user.ID,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresIn:  accessTTL,
		RefreshExpiresIn: s.tokenService.GetRefreshTokenExpiry(),
	}, nil
}

// Refresh mints a short-lived access token from a refresh token. The refresh
// token itself is neither rotated nor revoked.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResult, error) {
	if refreshToken == "" {
		return nil, s.fail(ctx, opRefresh, autherror.ErrNoRefreshToken)
	}

	claims, err := s.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, s.fail(ctx, opRefresh, err)
	}

	if claims == nil || claims.UserID == "" {
		return nil, s.fail(ctx, opRefresh, autherror.ErrMalformedPayload)
	}

	ttl := s.tokenService.GetRefreshedAccessTokenExpiry()
	accessToken, _, err := s.tokenService.GenerateAccessToken(claims.UserID, ttl)
	if err != nil {
		return nil, s.fail(ctx, opRefresh, autherror.Internal("AUTH_REFRESH_FAILED", "Token refresh failed", err))
	}

	metrics.RecordAuth(opRefresh, outcomeSuccess)
	return &dto.RefreshResult{AccessToken: accessToken, ExpiresIn: ttl}, nil
}

// UpdateProfile replaces username and email; the password hash changes only
// when a new password is supplied.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput) (*dto.UserOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, s.fail(ctx, opUpdateProfile, autherror.ErrValidation.WithDetails("Username and email are required"))
	}

	existing, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, opUpdateProfile, autherror.Internal("AUTH_UPDATE_FAILED", "Profile update failed", err))
	}
	if existing == nil {
		return nil, s.fail(ctx, opUpdateProfile, autherror.ErrUserNotFound)
	}

	update := domain.ProfileUpdate{
		Username: input.Username,
		Email:    input.Email,
	}

	if input.Password != "" {
		hashedPassword, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, s.fail(ctx, opUpdateProfile, autherror.Internal("AUTH_UPDATE_FAILED", "Profile update failed", err))
		}
		update.PasswordHash = &hashedPassword
	}

	user, err := s.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		if autherror.KindOf(err) == autherror.KindUserExists {
			return nil, s.fail(ctx, opUpdateProfile, autherror.ErrEmailAlreadyInUse)
		}
		return nil, s.fail(ctx, opUpdateProfile, autherror.Internal("AUTH_UPDATE_FAILED", "Profile update failed", err))
	}
	// deleted between the lookup and the update
	if user == nil {
		return nil, s.fail(ctx, opUpdateProfile, autherror.ErrUserNotFound)
	}

	metrics.RecordAuth(opUpdateProfile, outcomeSuccess)
	return &dto.UserOutput{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// fail logs the failure, counts it and returns it as an AppError. Internal
// causes are logged here and never leave the service.
func (s *UserService) fail(ctx context.Context, op string, err error) error {
	appErr := autherror.As(err)

	logger := logging.Ctx(ctx)
	event := logger.Warn()
	if appErr.Kind == autherror.KindInternal {
		event = logger.Error()
	}
	event.Err(appErr.Err).Str("op", op).Str("code", appErr.Code).Msg(appErr.Message)

	metrics.RecordAuth(op, appErr.Code)
	return appErr
}

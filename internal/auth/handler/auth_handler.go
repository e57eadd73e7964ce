package handler

import (
	"strconv"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/dto"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/service"
	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/gofiber/fiber/v2"
)

const (
	AccessTokenCookie  = "token"
	RefreshTokenCookie = "refreshToken"
)

// CookieConfig controls the flags on the auth cookies.
type CookieConfig struct {
	Secure bool
}

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	cookies      CookieConfig
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		cookies:      cookies,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrValidation.WithDetails("Invalid request body")
	}

	userID, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterOutput{
		Message: "User registered successfully",
		UserID:  userID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrValidation.WithDetails("Invalid request body")
	}

	pair, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	h.setCookie(c, AccessTokenCookie, pair.AccessToken, pair.AccessExpiresIn)
	h.setCookie(c, RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresIn)

	return c.Status(fiber.StatusOK).JSON(dto.LoginOutput{
		Message:   "Login successful",
		UserID:    pair.UserID,
		ExpiresIn: FormatExpiry(pair.AccessExpiresIn),
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.userService.Refresh(c.UserContext(), c.Cookies(RefreshTokenCookie))
	if err != nil {
		return err
	}

	h.setCookie(c, AccessTokenCookie, result.AccessToken, result.ExpiresIn)

	return c.Status(fiber.StatusOK).JSON(dto.RefreshOutput{
		Message:   "Token refreshed successfully",
		ExpiresIn: FormatExpiry(result.ExpiresIn),
	})
}

// UpdateProfile must run behind RequireAuth.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := UserID(c)
	if userID == "" {
		return autherror.ErrAuthRequired
	}

	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return autherror.ErrValidation.WithDetails("Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.UpdateProfileOutput{
		Message: "Profile updated successfully",
		User:    *user,
	})
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// FormatExpiry renders a lifetime the way clients see it: "7d", "2h", "15m".
func FormatExpiry(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d%(24*time.Hour) == 0:
		return strconv.FormatInt(int64(d/(24*time.Hour)), 10) + "d"
	case d%time.Hour == 0:
		return strconv.FormatInt(int64(d/time.Hour), 10) + "h"
	case d%time.Minute == 0:
		return strconv.FormatInt(int64(d/time.Minute), 10) + "m"
	default:
		return d.String()
	}
}

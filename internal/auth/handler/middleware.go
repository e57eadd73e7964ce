package handler

import (
	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/logging"
	"github.com/gofiber/fiber/v2"
)

const userIDLocal = "userID"

// RequireAuth verifies the access token cookie and exposes the caller's user
// id to downstream handlers. Any failure ends the request.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AccessTokenCookie)
		if token == "" {
			return autherror.ErrAuthRequired
		}

		claims, err := h.tokenService.VerifyAccessToken(token)
		if err != nil {
			appErr := autherror.As(err)
			logging.Ctx(c.UserContext()).Warn().Err(appErr.Err).Str("code", appErr.Code).Msg("Authentication error")
			return appErr
		}

		if claims == nil || claims.UserID == "" {
			return autherror.ErrTokenInvalid.WithDetails("Token missing required user ID")
		}

		c.Locals(userIDLocal, claims.UserID)
		return c.Next()
	}
}

// UserID returns the id set by RequireAuth, or "" outside a gated route.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}

package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts /v1/auth. middleware runs ahead of every auth route
// (rate limiting in production wiring).
func RegisterRoutes(app fiber.Router, h *AuthHandler, middleware ...fiber.Handler) {
	auth := app.Group("/v1/auth", middleware...)
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Put("/profile", h.RequireAuth(), h.UpdateProfile)
}

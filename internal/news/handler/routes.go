package handler

import (
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts /v1/news behind requireAuth.
func RegisterRoutes(app fiber.Router, h *NewsHandler, requireAuth fiber.Handler) {
	news := app.Group("/v1/news", requireAuth)
	news.Get("/", h.GetNews)
	news.Get("/search/:query", h.Search)
	news.Get("/read", h.ListMarked(domain.MarkRead))
	news.Get("/favorites", h.ListMarked(domain.MarkFavorite))
	news.Post("/:id/read", h.Mark(domain.MarkRead))
	news.Post("/:id/favorite", h.Mark(domain.MarkFavorite))
}

package handler

import (
	"net/url"
	"strings"

	authhandler "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/handler"
	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/dto"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/service"
	"github.com/gofiber/fiber/v2"
)

type NewsHandler struct {
	newsService *service.NewsService
}

func NewNewsHandler(newsService *service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// GetNews serves top headlines for ?categories=a,b.
func (h *NewsHandler) GetNews(c *fiber.Ctx) error {
	var categories []string
	if raw := c.Query("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}

	articles, err := h.newsService.GetTopHeadlines(c.UserContext(), categories)
	if err != nil {
		return err
	}
	return c.JSON(articles)
}

func (h *NewsHandler) Search(c *fiber.Ctx) error {
	query, err := url.PathUnescape(c.Params("query"))
	if err != nil {
		return autherror.ErrInvalidQuery
	}

	articles, err := h.newsService.Search(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(articles)
}

// Mark returns a handler that sets kind on the article named by :id.
func (h *NewsHandler) Mark(kind domain.MarkKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input dto.MarkInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return autherror.ErrValidation.WithDetails("Invalid request body")
			}
		}

		articleID, err := url.PathUnescape(c.Params("id"))
		if err != nil {
			return autherror.ErrValidation.WithDetails("Article id is required")
		}

		article, err := h.newsService.MarkArticle(c.UserContext(), authhandler.UserID(c), articleID, kind, input)
		if err != nil {
			return err
		}

		return c.JSON(dto.MarkOutput{
			Message: "Article marked as " + string(kind),
			Article: article,
		})
	}
}

// ListMarked returns a handler listing the caller's articles flagged with kind.
func (h *NewsHandler) ListMarked(kind domain.MarkKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		articles, err := h.newsService.ListMarked(c.UserContext(), authhandler.UserID(c), kind)
		if err != nil {
			return err
		}
		return c.JSON(articles)
	}
}

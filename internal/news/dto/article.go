package dto

import (
	"time"

	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
)

// MarkInput is the optional article metadata sent when flagging an article.
type MarkInput struct {
	Title       string     `json:"title" validate:"max=1000"`
	Description string     `json:"description" validate:"max=5000"`
	URL         string     `json:"url" validate:"omitempty,url"`
	URLToImage  string     `json:"urlToImage" validate:"omitempty,url"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type MarkOutput struct {
	Message string                `json:"message"`
	Article *domain.MarkedArticle `json:"article"`
}

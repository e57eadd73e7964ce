package domain

import (
	"time"

	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
)

// MarkKind selects which per-user article flag an operation touches.
type MarkKind string

const (
	MarkRead     MarkKind = "read"
	MarkFavorite MarkKind = "favorite"
)

func ParseMarkKind(s string) (MarkKind, error) {
	switch MarkKind(s) {
	case MarkRead:
		return MarkRead, nil
	case MarkFavorite:
		return MarkFavorite, nil
	default:
		return "", autherror.ErrInvalidMarkKind
	}
}

type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is an upstream news item as returned to clients.
type Article struct {
	Source      Source    `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
	Content     string    `json:"content"`
}

// MarkedArticle is the persisted per-user state of one article.
type MarkedArticle struct {
	ID          string     `json:"id"`
	ArticleID   string     `json:"articleId"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	URLToImage  string     `json:"urlToImage"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Read        bool       `json:"read"`
	Favorite    bool       `json:"favorite"`
	CreatedAt   time.Time  `json:"createdAt"`
}

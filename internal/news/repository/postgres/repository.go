package postgres

import (
	"context"
	"fmt"
	"time"

	autherror "github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/errors"
	"github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/news/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const articleColumns = `id, article_id, user_id, title, description, url, url_to_image, published_at, read, favorite, created_at`

// The flag column is fixed per query; it is never built from input.
const (
	markReadQuery = `
		INSERT INTO articles (id, article_id, user_id, title, description, url, url_to_image, published_at, created_at, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
		ON CONFLICT (user_id, article_id) DO UPDATE SET
			read = true,
			title = COALESCE(NULLIF(EXCLUDED.title, ''), articles.title),
			description = COALESCE(NULLIF(EXCLUDED.description, ''), articles.description),
			url = COALESCE(NULLIF(EXCLUDED.url, ''), articles.url),
			url_to_image = COALESCE(NULLIF(EXCLUDED.url_to_image, ''), articles.url_to_image),
			published_at = COALESCE(EXCLUDED.published_at, articles.published_at)
		RETURNING ` + articleColumns + `;`

	markFavoriteQuery = `
		INSERT INTO articles (id, article_id, user_id, title, description, url, url_to_image, published_at, created_at, favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
		ON CONFLICT (user_id, article_id) DO UPDATE SET
			favorite = true,
			title = COALESCE(NULLIF(EXCLUDED.title, ''), articles.title),
			description = COALESCE(NULLIF(EXCLUDED.description, ''), articles.description),
			url = COALESCE(NULLIF(EXCLUDED.url, ''), articles.url),
			url_to_image = COALESCE(NULLIF(EXCLUDED.url_to_image, ''), articles.url_to_image),
			published_at = COALESCE(EXCLUDED.published_at, articles.published_at)
		RETURNING ` + articleColumns + `;`

	listReadQuery = `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE user_id = $1 AND read
		ORDER BY created_at DESC;`

	listFavoriteQuery = `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE user_id = $1 AND favorite
		ORDER BY created_at DESC;`
)

type PostgresRepository struct {
	db  DBTX
	now func() time.Time
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

var _ domain.ArticleRepository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Mark(ctx context.Context, article *domain.MarkedArticle, kind domain.MarkKind) (*domain.MarkedArticle, error) {
	var query string
	switch kind {
	case domain.MarkRead:
		query = markReadQuery
	case domain.MarkFavorite:
		query = markFavoriteQuery
	default:
		return nil, autherror.ErrInvalidMarkKind
	}

	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		article.ArticleID,
		article.UserID,
		article.Title,
		article.Description,
		article.URL,
		article.URLToImage,
		article.PublishedAt,
		r.now(),
	)

	marked, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("failed to mark article as %s: %w", kind, err)
	}
	return marked, nil
}

func (r *PostgresRepository) ListMarked(ctx context.Context, userID string, kind domain.MarkKind) ([]domain.MarkedArticle, error) {
	var query string
	switch kind {
	case domain.MarkRead:
		query = listReadQuery
	case domain.MarkFavorite:
		query = listFavoriteQuery
	default:
		return nil, autherror.ErrInvalidMarkKind
	}

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s articles: %w", kind, err)
	}
	defer rows.Close()

	articles := []domain.MarkedArticle{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s article: %w", kind, err)
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s articles: %w", kind, err)
	}
	return articles, nil
}

func scanArticle(row pgx.Row) (*domain.MarkedArticle, error) {
	var a domain.MarkedArticle
	err := row.Scan(
		&a.ID,
		&a.ArticleID,
		&a.UserID,
		&a.Title,
		&a.Description,
		&a.URL,
		&a.URLToImage,
		&a.PublishedAt,
		&a.Read,
		&a.Favorite,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

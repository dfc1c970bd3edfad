package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// ListArticlesFilter carries the query parameters for paginated listings.
// Exactly one of Status or AuthorID is set: the public listing filters by
// Published status, the dashboard filters by the session author.
type ListArticlesFilter struct {
	Status   domain.ArticleStatus // non-empty = filter by status
	AuthorID string               // non-empty = filter by owning author
	Page     int                  // 1-based
	PerPage  int                  // page size
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	// Update overwrites the mutable fields (title, description, body, tags,
	// reading time, status, timestamps) of the stored article.
	Update(ctx context.Context, a *domain.Article) error
	// Delete removes the article by id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// List returns a page of articles sorted by created_at descending plus the
	// total count matching the filter (ignoring pagination).
	List(ctx context.Context, filter ListArticlesFilter) ([]*domain.Article, int64, error)
	// Search case-insensitively substring-matches the sanitized term against
	// title, description, body and tags.
	Search(ctx context.Context, term string) ([]*domain.Article, error)
	// IncrementReadCount atomically adds one to the article's read count.
	IncrementReadCount(ctx context.Context, id string) error
}

package ports

import (
	"context"
	"time"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// ArticlePage is one page of a listing plus the pagination bookkeeping the
// views need. NextPage/PrevPage are nil when no such page exists.
type ArticlePage struct {
	Articles    []*domain.Article
	Total       int64
	CurrentPage int
	NextPage    *int
	PrevPage    *int
}

// ArticleDetail is a single article joined with its author's display name.
type ArticleDetail struct {
	Article         *domain.Article
	AuthorFirstName string
	AuthorLastName  string
}

// CreateArticleInput carries the add-article form fields. Tags arrive as a
// single comma-separated string and are split and trimmed by the service.
// AuthorID always comes from the verified session, never from client input.
type CreateArticleInput struct {
	Title       string
	Description string
	Body        string
	Tags        string
	ReadingTime string
	AuthorID    string
}

// UpdateArticleInput carries the edit-article form fields.
type UpdateArticleInput struct {
	ID          string
	Title       string
	Description string
	Body        string
	Tags        string
	ReadingTime string
}

// PublishOutcome reports which edge of the publish state machine fired.
type PublishOutcome struct {
	Published bool
	Flash     domain.Flash
}

// ArticleService defines the public reader and author dashboard use cases.
type ArticleService interface {
	// ListPublished returns page `page` of published articles, newest first.
	ListPublished(ctx context.Context, page int) (*ArticlePage, error)
	// GetArticle fetches an article with its author's name. When countRead is
	// true the read count is incremented by exactly one.
	GetArticle(ctx context.Context, id string, countRead bool) (*ArticleDetail, error)
	// Search matches the term against title, description, body and tags.
	Search(ctx context.Context, term string) ([]*domain.Article, error)

	// ListByAuthor returns page `page` of the author's own articles.
	ListByAuthor(ctx context.Context, authorID string, page int) (*ArticlePage, error)
	Create(ctx context.Context, input CreateArticleInput) (*domain.Article, error)
	Update(ctx context.Context, input UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	// Publish drives the Drafted → Published transition and reports the flash
	// message describing the outcome. Repeated publishes are no-ops.
	Publish(ctx context.Context, id string, now time.Time) (*PublishOutcome, error)

	// RecordFlash stores a one-time notification for the author; errors are
	// logged, not surfaced.
	RecordFlash(ctx context.Context, authorID string, flash domain.Flash)
	// ConsumeFlashes returns and clears the author's pending notifications.
	ConsumeFlashes(ctx context.Context, authorID string) []domain.Flash
}

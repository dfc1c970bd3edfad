package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const (
	// PublicPageSize is the page size of the public published listing.
	PublicPageSize = 3
	// DashboardPageSize is the page size of the author's own listing.
	DashboardPageSize = 5
)

// ArticleService implements the public reader flow and the author dashboard
// flow on top of the article and author repositories.
type ArticleService struct {
	articles ports.ArticleRepository
	authors  ports.AuthorRepository
	flashes  ports.FlashStore
	logger   zerolog.Logger
}

func NewArticleService(articles ports.ArticleRepository, authors ports.AuthorRepository, flashes ports.FlashStore, logger zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, authors: authors, flashes: flashes, logger: logger}
}

// ListPublished returns one page of published articles, newest first.
// Pages out of range yield an empty list, not an error.
func (s *ArticleService) ListPublished(ctx context.Context, page int) (*ports.ArticlePage, error) {
	return s.list(ctx, ports.ListArticlesFilter{
		Status:  domain.StatusPublished,
		Page:    page,
		PerPage: PublicPageSize,
	})
}

// ListByAuthor returns one page of the author's own articles, newest first.
func (s *ArticleService) ListByAuthor(ctx context.Context, authorID string, page int) (*ports.ArticlePage, error) {
	return s.list(ctx, ports.ListArticlesFilter{
		AuthorID: authorID,
		Page:     page,
		PerPage:  DashboardPageSize,
	})
}

func (s *ArticleService) list(ctx context.Context, filter ports.ListArticlesFilter) (*ports.ArticlePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &ports.ArticlePage{
		Articles:    articles,
		Total:       total,
		CurrentPage: filter.Page,
	}
	if int64(filter.Page)*int64(filter.PerPage) < total {
		next := filter.Page + 1
		result.NextPage = &next
	}
	if filter.Page > 1 {
		prev := filter.Page - 1
		result.PrevPage = &prev
	}
	return result, nil
}

// GetArticle fetches an article joined with its author's name. When countRead
// is true the read count is incremented by exactly one; the returned detail
// reflects the incremented value.
func (s *ArticleService) GetArticle(ctx context.Context, id string, countRead bool) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if countRead {
		if err := s.articles.IncrementReadCount(ctx, article.ID); err != nil {
			return nil, err
		}
		article.ReadCount++
	}

	detail := &ports.ArticleDetail{Article: article}
	author, err := s.authors.FindByID(ctx, article.AuthorID)
	if err != nil {
		// A dangling author reference should not hide the article itself.
		if !errors.Is(err, domain.ErrAuthorNotFound) {
			return nil, err
		}
	} else {
		detail.AuthorFirstName = author.FirstName
		detail.AuthorLastName = author.LastName
	}
	return detail, nil
}

// Search strips the term down to alphanumerics (everything else becomes a
// space, neutralizing regex metacharacters) and substring-matches it against
// title, description, body and tags. Results are not paginated.
func (s *ArticleService) Search(ctx context.Context, term string) ([]*domain.Article, error) {
	return s.articles.Search(ctx, sanitizeSearchTerm(term))
}

// sanitizeSearchTerm replaces every non-alphanumeric byte with a space so the
// term can be embedded in a case-insensitive pattern match safely.
func sanitizeSearchTerm(term string) string {
	out := []byte(term)
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			out[i] = ' '
		}
	}
	return string(out)
}

// Create persists a new drafted article owned by the session author.
func (s *ArticleService) Create(ctx context.Context, input ports.CreateArticleInput) (*domain.Article, error) {
	now := time.Now().UTC()
	article := &domain.Article{
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		Tags:        splitTags(input.Tags),
		AuthorID:    input.AuthorID,
		Status:      domain.StatusDrafted,
		ReadingTime: input.ReadingTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.articles.Create(ctx, article)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create article")
		return nil, err
	}

	s.logger.Info().Str("article_id", created.ID).Str("author_id", created.AuthorID).Msg("article created")
	return created, nil
}

// Update overwrites all mutable fields from the form and bumps updatedAt.
// Ownership is not checked: any authenticated author may edit any article by
// id, matching the documented behavior of the dashboard.
func (s *ArticleService) Update(ctx context.Context, input ports.UpdateArticleInput) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	article.Title = input.Title
	article.Description = input.Description
	article.Body = input.Body
	article.Tags = splitTags(input.Tags)
	article.ReadingTime = input.ReadingTime
	article.UpdatedAt = time.Now().UTC()

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes the article by id. Deleting a non-existent id is a no-op.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	return s.articles.Delete(ctx, id)
}

// Publish drives the single-edge state machine Drafted → Published. The three
// outcomes (published, already published, not found) each record a flash
// consumed on the next dashboard render; only the first changes state.
func (s *ArticleService) Publish(ctx context.Context, id string, now time.Time) (*ports.PublishOutcome, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return &ports.PublishOutcome{
				Flash: domain.Flash{Level: domain.FlashError, Message: "Article not found"},
			}, nil
		}
		return nil, err
	}

	if err := article.Publish(now.UTC()); err != nil {
		return &ports.PublishOutcome{
			Flash: domain.Flash{Level: domain.FlashError, Message: "This article is already published!"},
		}, nil
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info().Str("article_id", article.ID).Msg("article published")
	return &ports.PublishOutcome{
		Published: true,
		Flash:     domain.Flash{Level: domain.FlashSuccess, Message: "Article has been published successfully!"},
	}, nil
}

// RecordFlash stores a one-time notification for the author.
func (s *ArticleService) RecordFlash(ctx context.Context, authorID string, flash domain.Flash) {
	if err := s.flashes.Push(ctx, authorID, flash); err != nil {
		s.logger.Warn().Err(err).Str("author_id", authorID).Msg("failed to record flash message")
	}
}

// ConsumeFlashes returns and clears the author's pending notifications.
func (s *ArticleService) ConsumeFlashes(ctx context.Context, authorID string) []domain.Flash {
	flashes, err := s.flashes.Pop(ctx, authorID)
	if err != nil {
		s.logger.Warn().Err(err).Str("author_id", authorID).Msg("failed to read flash messages")
		return nil
	}
	return flashes
}

// splitTags turns a comma-separated tag string into a trimmed, ordered list.
// Empty fragments are dropped.
func splitTags(tags string) []string {
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

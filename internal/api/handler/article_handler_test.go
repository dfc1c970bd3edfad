package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// stubArticleService records calls so tests can assert routing behavior
// (counted vs uncounted views, page parsing, flash recording).
type stubArticleService struct {
	article *domain.Article

	countedReads   int
	uncountedReads int
	lastListPage   int
	lastSearchTerm string
	publishOutcome *ports.PublishOutcome
	flashes        []domain.Flash
	deleted        []string
}

func (s *stubArticleService) ListPublished(_ context.Context, page int) (*ports.ArticlePage, error) {
	s.lastListPage = page
	return &ports.ArticlePage{CurrentPage: page}, nil
}

func (s *stubArticleService) GetArticle(_ context.Context, id string, countRead bool) (*ports.ArticleDetail, error) {
	if s.article == nil || s.article.ID != id {
		return nil, domain.ErrArticleNotFound
	}
	if countRead {
		s.countedReads++
	} else {
		s.uncountedReads++
	}
	return &ports.ArticleDetail{Article: s.article, AuthorFirstName: "Alice", AuthorLastName: "Austen"}, nil
}

func (s *stubArticleService) Search(_ context.Context, term string) ([]*domain.Article, error) {
	s.lastSearchTerm = term
	return nil, nil
}

func (s *stubArticleService) ListByAuthor(_ context.Context, _ string, page int) (*ports.ArticlePage, error) {
	s.lastListPage = page
	return &ports.ArticlePage{CurrentPage: page}, nil
}

func (s *stubArticleService) Create(_ context.Context, input ports.CreateArticleInput) (*domain.Article, error) {
	return &domain.Article{ID: "article-1", AuthorID: input.AuthorID, Status: domain.StatusDrafted}, nil
}

func (s *stubArticleService) Update(_ context.Context, input ports.UpdateArticleInput) (*domain.Article, error) {
	if s.article == nil || s.article.ID != input.ID {
		return nil, domain.ErrArticleNotFound
	}
	return s.article, nil
}

func (s *stubArticleService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubArticleService) Publish(_ context.Context, _ string, _ time.Time) (*ports.PublishOutcome, error) {
	return s.publishOutcome, nil
}

func (s *stubArticleService) RecordFlash(_ context.Context, _ string, flash domain.Flash) {
	s.flashes = append(s.flashes, flash)
}

func (s *stubArticleService) ConsumeFlashes(_ context.Context, _ string) []domain.Flash {
	out := s.flashes
	s.flashes = nil
	return out
}

func testArticle() *domain.Article {
	return &domain.Article{
		ID:          "article-1",
		Title:       "A title",
		Description: "A description",
		Body:        "A body",
		AuthorID:    "author-1",
		Status:      domain.StatusPublished,
		ReadCount:   4,
	}
}

func getContext(t *testing.T, target, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	return c, rec
}

func TestArticleHandler_Read_CountsExactlyOnce(t *testing.T) {
	svc := &stubArticleService{article: testArticle()}
	h := NewArticleHandler(svc)

	c, rec := getContext(t, "/article/article-1", "id", "article-1")
	if err := h.Read(c); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.countedReads != 1 || svc.uncountedReads != 0 {
		t.Fatalf("expected one counted read, got counted=%d uncounted=%d", svc.countedReads, svc.uncountedReads)
	}

	var resp articleDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Author.FirstName != "Alice" || resp.Author.LastName != "Austen" {
		t.Fatalf("author name not joined onto the view: %+v", resp.Author)
	}
}

func TestArticleHandler_View_DoesNotCount(t *testing.T) {
	svc := &stubArticleService{article: testArticle()}
	h := NewArticleHandler(svc)

	c, rec := getContext(t, "/view/article-1", "id", "article-1")
	if err := h.View(c); err != nil {
		t.Fatalf("View returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.countedReads != 0 || svc.uncountedReads != 1 {
		t.Fatalf("view route must not count reads, got counted=%d uncounted=%d", svc.countedReads, svc.uncountedReads)
	}
}

func TestArticleHandler_Read_NotFoundRedirectsToRoot(t *testing.T) {
	svc := &stubArticleService{}
	h := NewArticleHandler(svc)

	c, rec := getContext(t, "/article/ghost", "id", "ghost")
	if err := h.Read(c); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected 302 to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestArticleHandler_List_PageParam(t *testing.T) {
	svc := &stubArticleService{}
	h := NewArticleHandler(svc)

	c, _ := getContext(t, "/?page=4", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if svc.lastListPage != 4 {
		t.Fatalf("expected page 4, got %d", svc.lastListPage)
	}

	// missing and malformed pages default to 1
	c, _ = getContext(t, "/?page=banana", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if svc.lastListPage != 1 {
		t.Fatalf("malformed page must default to 1, got %d", svc.lastListPage)
	}
}

func TestArticleHandler_Search_PassesTerm(t *testing.T) {
	svc := &stubArticleService{}
	h := NewArticleHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"searchTerm":"closures"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastSearchTerm != "closures" {
		t.Fatalf("expected term to reach the service, got %q", svc.lastSearchTerm)
	}
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// ArticleHandler serves the public reader flow: the published listing, single
// article views and search.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List serves the landing page: published articles, newest first, paginated
// via the `page` query parameter. Defaults to 1; a page beyond range yields
// an empty list.
//
// @Summary      List published articles
// @Tags         articles
// @Produce      json
// @Param        page  query     int  false  "1-based page number"
// @Success      200   {object}  listArticlesResponse
// @Router       / [get]
func (h *ArticleHandler) List(c echo.Context) error {
	page := pageParam(c)

	result, err := h.service.ListPublished(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listArticlesResponse{
		Locals: pageLocals{
			Title:       "Blogging Website",
			Description: "A place to read and write articles.",
		},
		Articles:    result.Articles,
		Total:       result.Total,
		CurrentPage: result.CurrentPage,
		NextPage:    result.NextPage,
		PrevPage:    result.PrevPage,
	})
}

// Read serves the canonical article route and increments the read count by
// exactly one. A missing or malformed id redirects to the listing root.
//
// @Summary      Read an article (counted)
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  articleDetailResponse
// @Success      302
// @Router       /article/{id} [get]
func (h *ArticleHandler) Read(c echo.Context) error {
	return h.render(c, true)
}

// View renders identically to Read but never increments the read count; it is
// the intentional duplicate path for non-counted previews.
//
// @Summary      View an article (uncounted)
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  articleDetailResponse
// @Success      302
// @Router       /view/{id} [get]
func (h *ArticleHandler) View(c echo.Context) error {
	return h.render(c, false)
}

func (h *ArticleHandler) render(c echo.Context, countRead bool) error {
	detail, err := h.service.GetArticle(c.Request().Context(), c.Param("id"), countRead)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return c.Redirect(http.StatusFound, "/")
		}
		return err
	}

	if countRead {
		metrics.ArticleReadsTotal.Inc()
	}

	return c.JSON(http.StatusOK, articleDetailResponse{
		Locals: pageLocals{
			Title:       detail.Article.Title,
			Description: detail.Article.Description,
		},
		Article: detail.Article,
		Author: articleAuthorResponse{
			FirstName: detail.AuthorFirstName,
			LastName:  detail.AuthorLastName,
		},
	})
}

// Search matches the term against title, description, body and tags. Special
// characters are neutralized rather than causing a query error; results are
// not paginated.
//
// @Summary      Search articles
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Search term"
// @Success      200   {object}  searchResponse
// @Router       /search [post]
func (h *ArticleHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	articles, err := h.service.Search(c.Request().Context(), req.SearchTerm)
	if err != nil {
		return err
	}

	metrics.SearchesTotal.Inc()
	return c.JSON(http.StatusOK, searchResponse{
		Locals: pageLocals{
			Title:       "Search Results",
			Description: "Search results for the query: " + req.SearchTerm,
		},
		Articles: articles,
	})
}

// pageParam reads the 1-based `page` query parameter, defaulting to 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

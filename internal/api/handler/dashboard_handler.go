package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// DashboardHandler serves the authenticated author flow: the dashboard
// listing and the article lifecycle (create, edit, delete, publish).
//
// Ownership is intentionally not checked beyond a valid session: any
// authenticated author may edit, delete or publish any article by id.
type DashboardHandler struct {
	service ports.ArticleService
}

func NewDashboardHandler(service ports.ArticleService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Dashboard lists the session author's own articles (page size 5, newest
// first) together with any flash recorded by the previous action.
//
// @Summary      Author dashboard
// @Tags         dashboard
// @Produce      json
// @Security     CookieAuth
// @Param        page  query     int  false  "1-based page number"
// @Success      200   {object}  listArticlesResponse
// @Failure      401   {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	authorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListByAuthor(c.Request().Context(), authorID, pageParam(c))
	if err != nil {
		return err
	}

	resp := listArticlesResponse{
		Locals: pageLocals{
			Title:       "Dashboard",
			Description: "Manage your articles.",
		},
		Articles:    result.Articles,
		Total:       result.Total,
		CurrentPage: result.CurrentPage,
		NextPage:    result.NextPage,
		PrevPage:    result.PrevPage,
	}

	for _, f := range h.service.ConsumeFlashes(c.Request().Context(), authorID) {
		msg := f.Message
		switch f.Level {
		case domain.FlashSuccess:
			if resp.SuccessMessage == nil {
				resp.SuccessMessage = &msg
			}
		case domain.FlashError:
			if resp.ErrorMessage == nil {
				resp.ErrorMessage = &msg
			}
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// AddArticlePage serves the add-article form locals.
//
// @Summary      Add-article page
// @Tags         dashboard
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  pageLocals
// @Router       /add-article [get]
func (h *DashboardHandler) AddArticlePage(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageLocals{
		Title:       "Add Article",
		Description: "Write a new article.",
	})
}

// AddArticle creates a drafted article owned by the session author. The
// author id always comes from the verified token, never from client input.
//
// @Summary      Create an article
// @Tags         dashboard
// @Accept       json
// @Security     CookieAuth
// @Param        body  body  articleRequest  true  "Article fields"
// @Success      302
// @Failure      400   {object}  errorResponse
// @Router       /add-article [post]
func (h *DashboardHandler) AddArticle(c echo.Context) error {
	authorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if _, err := h.service.Create(c.Request().Context(), ports.CreateArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Tags:        req.Tags,
		ReadingTime: req.ReadingTime,
		AuthorID:    authorID,
	}); err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.Inc()
	return c.Redirect(http.StatusFound, "/dashboard")
}

// EditArticlePage serves the edit form locals plus the current article state.
//
// @Summary      Edit-article page
// @Tags         dashboard
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  articleDetailResponse
// @Success      302
// @Router       /edit-article/{id} [get]
func (h *DashboardHandler) EditArticlePage(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	detail, err := h.service.GetArticle(c.Request().Context(), c.Param("id"), false)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return c.Redirect(http.StatusFound, "/dashboard")
		}
		return err
	}

	return c.JSON(http.StatusOK, articleDetailResponse{
		Locals: pageLocals{
			Title:       "Edit Article",
			Description: "Update your article.",
		},
		Article: detail.Article,
		Author: articleAuthorResponse{
			FirstName: detail.AuthorFirstName,
			LastName:  detail.AuthorLastName,
		},
	})
}

// EditArticle overwrites all mutable fields from the form and bumps
// updatedAt.
//
// @Summary      Update an article
// @Tags         dashboard
// @Accept       json
// @Security     CookieAuth
// @Param        id    path  string          true  "Article id"
// @Param        body  body  articleRequest  true  "Article fields"
// @Success      302
// @Failure      400   {object}  errorResponse
// @Router       /edit-article/{id} [put]
func (h *DashboardHandler) EditArticle(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if _, err := h.service.Update(c.Request().Context(), ports.UpdateArticleInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Tags:        req.Tags,
		ReadingTime: req.ReadingTime,
	}); err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return c.Redirect(http.StatusFound, "/dashboard")
		}
		return err
	}

	return c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteArticle removes the article by id. Deleting a non-existent id is not
// distinguished as an error.
//
// @Summary      Delete an article
// @Tags         dashboard
// @Security     CookieAuth
// @Param        id  path  string  true  "Article id"
// @Success      302
// @Router       /delete-article/{id} [delete]
func (h *DashboardHandler) DeleteArticle(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

// PublishArticle drives the Drafted → Published transition. All three
// outcomes (published, already published, not found) record a flash for the
// next dashboard render and redirect back to the dashboard.
//
// @Summary      Publish an article
// @Tags         dashboard
// @Security     CookieAuth
// @Param        id  path  string  true  "Article id"
// @Success      302
// @Router       /publish-article/{id} [get]
func (h *DashboardHandler) PublishArticle(c echo.Context) error {
	authorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	outcome, err := h.service.Publish(c.Request().Context(), c.Param("id"), time.Now())
	if err != nil {
		h.service.RecordFlash(c.Request().Context(), authorID, domain.Flash{
			Level:   domain.FlashError,
			Message: "An error occurred while publishing the article. Please try again.",
		})
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	if outcome.Published {
		metrics.ArticlesPublishedTotal.Inc()
	}
	h.service.RecordFlash(c.Request().Context(), authorID, outcome.Flash)
	return c.Redirect(http.StatusFound, "/dashboard")
}

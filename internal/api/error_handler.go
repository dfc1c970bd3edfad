package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic codes and the exact messages the
	// forms surface.
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "All fields are required"
	case errors.Is(err, domain.ErrInvalidCredentials):
		// Unknown username and wrong password share this message so the
		// caller cannot tell which field was wrong.
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrAuthorExists):
		return http.StatusConflict, "Username and Email already exists"
	case errors.Is(err, domain.ErrArticleNotFound):
		return http.StatusNotFound, "Article not found"
	case errors.Is(err, domain.ErrAuthorNotFound):
		return http.StatusNotFound, "Author not found"
	case errors.Is(err, domain.ErrAlreadyPublished):
		return http.StatusConflict, "This article is already published!"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/middleware"
)

// ctxIdentity extracts the session identity injected by the Auth middleware.
// The middleware already verified the token; this re-checks that the decoded
// payload actually carries an author id. A signature-valid token with an
// empty subject is rejected with 401.
func ctxIdentity(c echo.Context) (authorID, username string, err error) {
	authorID, _ = c.Get(middleware.CtxAuthorID).(string)
	if authorID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated or user ID not found")
	}

	username, _ = c.Get(middleware.CtxUsername).(string)
	return authorID, username, nil
}

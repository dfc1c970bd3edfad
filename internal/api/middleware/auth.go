package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// CookieName is the auth cookie carrying the session token.
const CookieName = "authToken"

// Context keys populated by Auth for downstream handlers.
const (
	CtxAuthorID = "author_id"
	CtxUsername = "username"
)

// Auth is the gate on dashboard routes. The token is read from the authToken
// cookie, falling back to an Authorization bearer header, and verified for
// signature and expiry. On success the typed claims land on the context; on
// any failure the browser is redirected to the login page instead of
// receiving a bare 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			claims := &domain.Claims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(CtxAuthorID, claims.AuthorID)
			c.Set(CtxUsername, claims.Username)

			return next(c)
		}
	}
}

// tokenFromRequest prefers the cookie and falls back to the bearer header.
func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

package domain

import "github.com/golang-jwt/jwt/v5"

// Claims is the typed session-token payload. It is verified once at the trust
// boundary (the auth middleware) and carried on the request context, instead
// of being re-read as loose untyped fields per route.
type Claims struct {
	AuthorID string `json:"authorId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

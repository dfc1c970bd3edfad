package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// RegisterInput carries the registration form fields. Bio is optional,
// everything else is required.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
}

// AuthService implements registration and the session/token flow.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Author, error)
	// Login verifies the credentials and returns a signed token. Unknown
	// username and wrong password both fail with domain.ErrInvalidCredentials
	// so the two cases are indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (string, *domain.Author, error)
}

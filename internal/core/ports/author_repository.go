package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// AuthorRepository defines persistence operations for authors.
type AuthorRepository interface {
	// Create inserts a new author. A duplicate username or email surfaces as
	// domain.ErrAuthorExists (unique indexes back the invariant).
	Create(ctx context.Context, author *domain.Author) (*domain.Author, error)
	FindByID(ctx context.Context, id string) (*domain.Author, error)
	FindByUsername(ctx context.Context, username string) (*domain.Author, error)
	// Exists reports whether an author with the given username OR email is
	// already registered.
	Exists(ctx context.Context, username, email string) (bool, error)
}

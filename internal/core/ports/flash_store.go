package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// FlashStore holds one-time notifications between a redirect and the next
// dashboard render, keyed by author id. The web tier stays stateless: the
// store is externalized (Redis).
type FlashStore interface {
	Push(ctx context.Context, authorID string, flash domain.Flash) error
	// Pop returns and removes all pending flashes for the author.
	Pop(ctx context.Context, authorID string) ([]domain.Flash, error)
}

package ports

import (
	"context"

	"github.com/superlibrary/library-api/internal/core/domain"
)

// BookService defines use-case operations for books. It is the only layer
// with business rules: duplicate detection, existence checks, list limits.
type BookService interface {
	// Create rejects a book whose {title, author} pair already exists with
	// domain.ErrDuplicateBook.
	Create(ctx context.Context, in domain.CreateBook) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	// List rejects limits above the service ceiling with domain.ErrLimitTooLarge.
	List(ctx context.Context, q ListQuery) ([]*domain.Book, error)
	// Update checks existence first; an empty patch returns the current book
	// without writing.
	Update(ctx context.Context, id string, in domain.UpdateBook) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

package ports

import (
	"context"

	"github.com/superlibrary/library-api/internal/core/domain"
)

// BookRepository defines raw persistence operations on the books collection.
// No business rules live here: the repository reports what the store did and
// nothing more.
//
// Every method taking an id returns domain.ErrInvalidID when the string is
// not a syntactically valid store identifier, before any store round-trip.
type BookRepository interface {
	// Create inserts a new book and re-reads it to build the read model.
	// A failed re-read surfaces as domain.ErrInconsistentRead.
	Create(ctx context.Context, in domain.CreateBook) (*domain.Book, error)
	// GetByID returns domain.ErrBookNotFound when no document matches.
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, q ListQuery) ([]*domain.Book, error)
	// Update applies only the fields present in the patch. An empty patch
	// reads back the current document without writing.
	Update(ctx context.Context, id string, in domain.UpdateBook) (*domain.Book, error)
	// Delete reports whether exactly one document was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

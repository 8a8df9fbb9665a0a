package ports

import (
	"context"

	"github.com/superlibrary/library-api/internal/core/domain"
)

// UserRepository defines raw persistence operations on the users collection.
// Identifier handling mirrors BookRepository: malformed ids fail with
// domain.ErrInvalidID before any store call, missing documents with
// domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, in domain.CreateUser) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail looks up a user by exact stored email. Callers pass an
	// already-normalized address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, q ListQuery) ([]*domain.User, error)
	Update(ctx context.Context, id string, in domain.UpdateUser) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

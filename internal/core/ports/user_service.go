package ports

import (
	"context"

	"github.com/superlibrary/library-api/internal/core/domain"
)

// UserService defines use-case operations for users. Email uniqueness is
// enforced here, case-insensitively, because the store does not enforce it.
type UserService interface {
	// Create normalizes the email, hashes the password, and rejects an
	// already-registered address with domain.ErrEmailTaken.
	Create(ctx context.Context, in domain.CreateUser) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail normalizes the address before the lookup.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, q ListQuery) ([]*domain.User, error)
	// Update re-checks email uniqueness against other users when the patch
	// changes the address.
	Update(ctx context.Context, id string, in domain.UpdateUser) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/superlibrary/library-api/internal/core/domain"
	"github.com/superlibrary/library-api/internal/core/ports"
)

// UserService layers the user-specific rules on the generic CRUD flow:
// case-insensitive email uniqueness, email normalization on every path that
// touches an address, and bcrypt hashing of incoming passwords.
type UserService struct {
	crud[domain.CreateUser, domain.UpdateUser, domain.User]
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	s := &UserService{repo: repo, log: log}
	s.crud = newCRUD[domain.CreateUser, domain.UpdateUser, domain.User](
		repo,
		Hooks[domain.CreateUser, domain.UpdateUser]{
			BeforeCreate: s.prepareCreate,
			BeforeUpdate: s.prepareUpdate,
			FilterList:   normalizeEmailFilter,
		},
		domain.ErrUserNotFound,
		"user",
		log,
	)
	return s
}

// GetByEmail looks a user up by normalized address.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
}

// prepareCreate normalizes the email, enforces uniqueness via the dedicated
// email lookup, hashes the password, and defaults the registration date.
func (s *UserService) prepareCreate(ctx context.Context, in domain.CreateUser) (domain.CreateUser, error) {
	in.Email = domain.NormalizeEmail(in.Email)

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		s.log.Info().Str("email", in.Email).Msg("duplicate email rejected")
		return in, domain.ErrEmailTaken
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return in, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return in, err
	}
	in.Password = hash

	if in.RegisteredDate.IsZero() {
		in.RegisteredDate = time.Now().UTC()
	}
	return in, nil
}

// prepareUpdate normalizes a changed email and checks it does not collide
// with a different user. Updating a user to its own address is not a
// conflict, whatever the letter case.
func (s *UserService) prepareUpdate(ctx context.Context, id string, in domain.UpdateUser) (domain.UpdateUser, error) {
	if in.Email != nil {
		normalized := domain.NormalizeEmail(*in.Email)
		in.Email = &normalized

		existing, err := s.repo.FindByEmail(ctx, normalized)
		switch {
		case err == nil && existing != nil && existing.ID != id:
			s.log.Info().Str("email", normalized).Str("user_id", id).Msg("email collision on update")
			return in, domain.ErrEmailTaken
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return in, err
		}
	}

	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return in, err
		}
		in.Password = &hash
	}
	return in, nil
}

// normalizeEmailFilter rewrites an email filter to its normalized form so
// list filtering is case-insensitive on that one field. The map is copied,
// not mutated in place.
func normalizeEmailFilter(q ports.ListQuery) ports.ListQuery {
	raw, ok := q.Filters["email"]
	if !ok {
		return q
	}

	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters["email"] = domain.NormalizeEmail(raw)
	q.Filters = filters
	return q
}

func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

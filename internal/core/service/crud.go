package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/superlibrary/library-api/internal/core/domain"
	"github.com/superlibrary/library-api/internal/core/ports"
)

// maxListLimit is the ceiling on the limit parameter of any list operation.
const maxListLimit = 200

// Patch is implemented by update models so the generic flow can detect a
// patch that carries no changes.
type Patch interface {
	Empty() bool
}

// Repository is the persistence surface driven by the generic CRUD flow,
// parameterized over an entity's create/update/read model triple.
type Repository[C any, U Patch, R any] interface {
	Create(ctx context.Context, in C) (*R, error)
	GetByID(ctx context.Context, id string) (*R, error)
	List(ctx context.Context, q ports.ListQuery) ([]*R, error)
	Update(ctx context.Context, id string, in U) (*R, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Hooks inject the only rules that differ between entities: uniqueness
// predicates and input normalization. Nil hooks are skipped.
type Hooks[C any, U Patch] struct {
	// BeforeCreate runs the duplicate check and may normalize the input.
	BeforeCreate func(ctx context.Context, in C) (C, error)
	// BeforeUpdate runs after the existence check and the empty-patch
	// short-circuit, so it only sees patches that will be written.
	BeforeUpdate func(ctx context.Context, id string, in U) (U, error)
	// FilterList may rewrite the list query before it reaches the store.
	FilterList func(q ports.ListQuery) ports.ListQuery
}

// crud implements the CRUD flow shared by every entity service: existence
// checks, the list limit ceiling, empty-patch no-ops, and the mapping of a
// lost check-then-act race to the entity's not-found error.
type crud[C any, U Patch, R any] struct {
	repo     Repository[C, U, R]
	hooks    Hooks[C, U]
	notFound error
	entity   string
	log      zerolog.Logger
}

func newCRUD[C any, U Patch, R any](
	repo Repository[C, U, R],
	hooks Hooks[C, U],
	notFound error,
	entity string,
	log zerolog.Logger,
) crud[C, U, R] {
	return crud[C, U, R]{
		repo:     repo,
		hooks:    hooks,
		notFound: notFound,
		entity:   entity,
		log:      log,
	}
}

func (s *crud[C, U, R]) Create(ctx context.Context, in C) (*R, error) {
	if s.hooks.BeforeCreate != nil {
		var err error
		if in, err = s.hooks.BeforeCreate(ctx, in); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Str("entity", s.entity).Msg("create failed")
		return nil, err
	}
	return created, nil
}

func (s *crud[C, U, R]) GetByID(ctx context.Context, id string) (*R, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *crud[C, U, R]) List(ctx context.Context, q ports.ListQuery) ([]*R, error) {
	if q.Limit > maxListLimit {
		return nil, fmt.Errorf("%w: got %d", domain.ErrLimitTooLarge, q.Limit)
	}
	if s.hooks.FilterList != nil {
		q = s.hooks.FilterList(q)
	}
	return s.repo.List(ctx, q)
}

func (s *crud[C, U, R]) Update(ctx context.Context, id string, in U) (*R, error) {
	// Existence check runs even for empty patches, so malformed ids and
	// missing documents are reported the same way on every path.
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Empty() {
		return current, nil
	}

	if s.hooks.BeforeUpdate != nil {
		if in, err = s.hooks.BeforeUpdate(ctx, id, in); err != nil {
			return nil, err
		}
	}

	// The document can vanish between the check above and this write; the
	// repository then reports not-found and we pass it through unchanged.
	updated, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *crud[C, U, R]) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		// Lost the race with a concurrent delete.
		return s.notFound
	}

	s.log.Info().Str("entity", s.entity).Str("id", id).Msg("deleted")
	return nil
}

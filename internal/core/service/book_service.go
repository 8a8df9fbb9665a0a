package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/superlibrary/library-api/internal/core/domain"
	"github.com/superlibrary/library-api/internal/core/ports"
)

// BookService layers the book-specific uniqueness rule on the generic CRUD
// flow: no two books may share the same {title, author} pair.
type BookService struct {
	crud[domain.CreateBook, domain.UpdateBook, domain.Book]
	repo ports.BookRepository
	log  zerolog.Logger
}

func NewBookService(repo ports.BookRepository, log zerolog.Logger) *BookService {
	s := &BookService{repo: repo, log: log}
	s.crud = newCRUD[domain.CreateBook, domain.UpdateBook, domain.Book](
		repo,
		Hooks[domain.CreateBook, domain.UpdateBook]{
			BeforeCreate: s.checkDuplicate,
		},
		domain.ErrBookNotFound,
		"book",
		log,
	)
	return s
}

// checkDuplicate queries for an existing book with the same title and author.
// The check is read-then-act with no isolation: two concurrent creates with
// the same pair can both pass it. No store-level constraint backs the rule.
func (s *BookService) checkDuplicate(ctx context.Context, in domain.CreateBook) (domain.CreateBook, error) {
	existing, err := s.repo.List(ctx, ports.ListQuery{
		Limit:   1,
		Filters: map[string]string{"title": in.Title, "author": in.Author},
	})
	if err != nil {
		return in, err
	}
	if len(existing) > 0 {
		s.log.Info().Str("title", in.Title).Str("author", in.Author).Msg("duplicate book rejected")
		return in, domain.ErrDuplicateBook
	}
	return in, nil
}

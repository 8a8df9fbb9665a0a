package handler

import (
	"time"

	"github.com/superlibrary/library-api/internal/core/domain"
)

// --- Request → Service input ---

func toCreateBook(req createBookRequest) domain.CreateBook {
	return domain.CreateBook{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		TotalCopies:   req.TotalCopies,
	}
}

func toUpdateBook(req updateBookRequest) domain.UpdateBook {
	return domain.UpdateBook{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		TotalCopies:   req.TotalCopies,
	}
}

// --- Service result → HTTP response ---

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		TotalCopies:   b.TotalCopies,
		AgeYears:      b.AgeYears(time.Now().UTC()),
	}
}

func toBookListResponse(books []*domain.Book) bookListResponse {
	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return bookListResponse{Books: out, Count: len(out)}
}

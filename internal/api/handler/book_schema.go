package handler

import "time"

// --- Request / Response types ---

type createBookRequest struct {
	Title         string    `json:"title"          validate:"required"`
	Author        string    `json:"author"         validate:"required"`
	PublishedYear time.Time `json:"published_year" validate:"required"`
	Genre         string    `json:"genre"          validate:"required"`
	TotalCopies   int       `json:"total_copies"   validate:"gte=0"`
}

type updateBookRequest struct {
	Title         *string    `json:"title"`
	Author        *string    `json:"author"`
	PublishedYear *time.Time `json:"published_year"`
	Genre         *string    `json:"genre"`
	TotalCopies   *int       `json:"total_copies" validate:"omitempty,gte=0"`
}

// Response-only type owned by the transport layer, intentionally separate
// from the domain model so the JSON contract is not coupled to internal
// changes. AgeYears is derived at render time.
type bookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear time.Time `json:"published_year"`
	Genre         string    `json:"genre"`
	TotalCopies   int       `json:"total_copies"`
	AgeYears      int       `json:"age_years"`
}

type bookListResponse struct {
	Books []bookResponse `json:"books"`
	Count int            `json:"count"`
}

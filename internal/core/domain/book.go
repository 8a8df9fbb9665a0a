package domain

import "time"

// Book is the read model for a single catalog entry. The identifier is
// assigned by the store on insertion.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear time.Time `json:"published_year"`
	Genre         string    `json:"genre"`
	TotalCopies   int       `json:"total_copies"`
}

// AgeYears returns the number of whole calendar years since publication.
// Computed at read time, never stored.
func (b *Book) AgeYears(now time.Time) int {
	return now.Year() - b.PublishedYear.Year()
}

// CreateBook carries every field required to insert a new book.
type CreateBook struct {
	Title         string
	Author        string
	PublishedYear time.Time
	Genre         string
	TotalCopies   int
}

// UpdateBook is a partial patch. A nil field was not supplied by the caller
// and must leave the stored value untouched.
type UpdateBook struct {
	Title         *string
	Author        *string
	PublishedYear *time.Time
	Genre         *string
	TotalCopies   *int
}

// Empty reports whether the patch carries no changes at all.
func (u UpdateBook) Empty() bool {
	return u.Title == nil && u.Author == nil && u.PublishedYear == nil &&
		u.Genre == nil && u.TotalCopies == nil
}

package domain

import "time"

// Accepted publication years.
const (
	MinPublicationYear = 1000
	MaxPublicationYear = 9999
)

// Book is a title written by one author.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Genre           *string   `json:"genre"`
	PublicationYear *int      `json:"publicationYear"`
	AuthorID        int64     `json:"authorId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookView is a book as returned by the API, flattened with its author.
type BookView struct {
	Book
	AuthorName string  `json:"authorName"`
	AuthorBio  *string `json:"bio"`
}

// BookPatch holds the fields of a partial book update. Nil means unchanged.
type BookPatch struct {
	Title           *string
	Genre           *string
	PublicationYear *int
	AuthorID        *int64
}

// NewBook creates a validated Book.
func NewBook(title string, genre *string, year *int, authorID int64, now time.Time) (*Book, error) {
	b := &Book{
		Title:           title,
		Genre:           genre,
		PublicationYear: year,
		AuthorID:        authorID,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the book's fields.
func (b *Book) Validate() error {
	switch {
	case b.Title == "":
		return NewValidationError("title", ErrEmptyTitle)
	case b.AuthorID <= 0:
		return NewValidationError("authorId", ErrInvalidAuthorID)
	case b.PublicationYear != nil &&
		(*b.PublicationYear < MinPublicationYear || *b.PublicationYear > MaxPublicationYear):
		return NewValidationError("publicationYear", ErrInvalidYear)
	}
	return nil
}

// Apply copies the set fields of p onto b and revalidates.
func (b *Book) Apply(p BookPatch, now time.Time) error {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Genre != nil {
		b.Genre = p.Genre
	}
	if p.PublicationYear != nil {
		b.PublicationYear = p.PublicationYear
	}
	if p.AuthorID != nil {
		b.AuthorID = *p.AuthorID
	}
	b.UpdatedAt = now.UTC()
	return b.Validate()
}

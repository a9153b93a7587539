package domain

import (
	"time"
	"unicode/utf8"
)

// MaxAuthorNameLength is the longest accepted author name, in characters.
const MaxAuthorNameLength = 200

// Author is a writer of books. Names are unique.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Books     []Book    `json:"books"`
}

// AuthorPatch holds the fields of a partial author update. Nil means unchanged.
type AuthorPatch struct {
	Name *string
	Bio  *string
}

// NewAuthor creates a validated Author.
func NewAuthor(name string, bio *string, now time.Time) (*Author, error) {
	a := &Author{
		Name:      name,
		Bio:       bio,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
		Books:     []Book{},
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the author's fields.
func (a *Author) Validate() error {
	if a.Name == "" {
		return NewValidationError("name", ErrEmptyName)
	}
	if utf8.RuneCountInString(a.Name) > MaxAuthorNameLength {
		return NewValidationError("name", ErrNameTooLong)
	}
	return nil
}

// Apply copies the set fields of p onto a and revalidates.
func (a *Author) Apply(p AuthorPatch, now time.Time) error {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Bio != nil {
		a.Bio = p.Bio
	}
	a.UpdatedAt = now.UTC()
	return a.Validate()
}

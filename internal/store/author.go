package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shelf-api/internal/domain"
)

// AuthorStore defines the interface for author data persistence.
type AuthorStore interface {
	// Create saves a new author and sets its ID.
	// Returns ErrAuthorNameExists if the name is taken.
	Create(ctx context.Context, author *domain.Author) error

	// List returns one page of authors, newest first, each with its books,
	// plus the total number of authors.
	List(ctx context.Context, page Page) ([]domain.Author, int, error)

	// GetByID retrieves an author with its books.
	// Returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Author, error)

	// Exists reports whether an author with the ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Update saves the author's name, bio and update time.
	// Returns ErrAuthorNotFound or ErrAuthorNameExists.
	Update(ctx context.Context, author *domain.Author) error

	// Delete removes an author.
	// Returns ErrAuthorNotFound, or ErrReferenced while books still point at it.
	Delete(ctx context.Context, id int64) error

	// WithTx returns an AuthorStore bound to the given transaction.
	WithTx(tx *sql.Tx) AuthorStore
}

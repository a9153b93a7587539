package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shelf-api/internal/domain"
)

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// Create saves a new book and sets its ID.
	// Returns ErrInvalidEntity if the author does not exist.
	Create(ctx context.Context, book *domain.Book) error

	// List returns one page of books, newest first, joined with their
	// authors, plus the total number of books.
	List(ctx context.Context, page Page) ([]domain.BookView, int, error)

	// GetByID retrieves a book joined with its author.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.BookView, error)

	// Update saves every mutable field of the book.
	// Returns ErrBookNotFound, or ErrInvalidEntity if the author does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a BookStore bound to the given transaction.
	WithTx(tx *sql.Tx) BookStore
}

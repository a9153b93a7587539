package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/store"
)

// BookInput holds the fields of a new book.
type BookInput struct {
	Title           string  `json:"title"`
	Genre           *string `json:"genre"`
	PublicationYear *int    `json:"publicationYear"`
	AuthorID        int64   `json:"authorId"`
}

// BookService manages books.
type BookService interface {
	// Create adds a book for an existing author. A missing author fails
	// with BOOK_AUTHOR_NOT_FOUND.
	Create(ctx context.Context, in BookInput) (*domain.BookView, error)

	// List returns a page of books, newest first, and the total book count.
	List(ctx context.Context, page store.Page) ([]domain.BookView, int, error)

	Get(ctx context.Context, id int64) (*domain.BookView, error)

	// Update applies a partial update and returns the stored book.
	Update(ctx context.Context, id int64, patch domain.BookPatch) (*domain.BookView, error)

	Delete(ctx context.Context, id int64) error
}

// BookServiceImpl implements BookService.
type BookServiceImpl struct {
	books   store.BookStore
	authors store.AuthorStore
	db      *sql.DB
	logger  *slog.Logger
}

var _ BookService = (*BookServiceImpl)(nil)

// NewBookService creates a new BookService.
func NewBookService(books store.BookStore, authors store.AuthorStore, db *sql.DB, logger *slog.Logger) *BookServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookServiceImpl{
		books:   books,
		authors: authors,
		db:      db,
		logger:  logger.With("component", "book_service"),
	}
}

// Create implements BookService.
func (s *BookServiceImpl) Create(ctx context.Context, in BookInput) (*domain.BookView, error) {
	book, err := domain.NewBook(in.Title, in.Genre, in.PublicationYear, in.AuthorID, time.Now())
	if err != nil {
		if f := domainFailure(err); f != nil {
			return nil, f
		}
		return nil, fmt.Errorf("failed to build book: %w", err)
	}

	var view *domain.BookView
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.requireAuthor(ctx, s.authors.WithTx(tx), book.AuthorID); err != nil {
			return err
		}

		txBooks := s.books.WithTx(tx)
		if err := txBooks.Create(ctx, book); err != nil {
			return err
		}

		view, err = txBooks.GetByID(ctx, book.ID)
		return err
	})
	if err != nil {
		return nil, s.mapError("create", err)
	}
	return view, nil
}

// List implements BookService.
func (s *BookServiceImpl) List(ctx context.Context, page store.Page) ([]domain.BookView, int, error) {
	books, total, err := s.books.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	return books, total, nil
}

// Get implements BookService.
func (s *BookServiceImpl) Get(ctx context.Context, id int64) (*domain.BookView, error) {
	view, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("get", err)
	}
	return view, nil
}

// Update implements BookService.
func (s *BookServiceImpl) Update(ctx context.Context, id int64, patch domain.BookPatch) (*domain.BookView, error) {
	var view *domain.BookView
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.books.WithTx(tx)

		current, err := txBooks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.AuthorID != nil && *patch.AuthorID != current.AuthorID {
			if err := s.requireAuthor(ctx, s.authors.WithTx(tx), *patch.AuthorID); err != nil {
				return err
			}
		}

		book := current.Book
		if err := book.Apply(patch, time.Now()); err != nil {
			return err
		}
		if err := txBooks.Update(ctx, &book); err != nil {
			return err
		}

		view, err = txBooks.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if f := domainFailure(err); f != nil {
			return nil, f
		}
		return nil, s.mapError("update", err)
	}
	return view, nil
}

// Delete implements BookService.
func (s *BookServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return s.mapError("delete", err)
	}
	return nil
}

func (s *BookServiceImpl) requireAuthor(ctx context.Context, authors store.AuthorStore, id int64) error {
	exists, err := authors.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		logger.FromContextOrDefault(ctx, s.logger).Debug("book references a missing author",
			"author_id", id)
		return errBookAuthorNotFound()
	}
	return nil
}

// mapError translates store errors into failures; failures already raised
// inside a transaction pass through unchanged.
func (s *BookServiceImpl) mapError(op string, err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errBookNotFound()
	case errors.Is(err, store.ErrInvalidEntity):
		// The author vanished between the check and the write.
		return errBookAuthorNotFound()
	default:
		return fmt.Errorf("failed to %s book: %w", op, err)
	}
}

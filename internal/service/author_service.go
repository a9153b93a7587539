package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/store"
)

// AuthorService manages authors.
type AuthorService interface {
	Create(ctx context.Context, name string, bio *string) (*domain.Author, error)

	// List returns a page of authors, newest first, with their books and
	// the total author count.
	List(ctx context.Context, page store.Page) ([]domain.Author, int, error)

	Get(ctx context.Context, id int64) (*domain.Author, error)

	// Update applies a partial update and returns the stored author.
	Update(ctx context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error)

	// Delete removes an author. Authors with books fail with AUTHOR_HAS_BOOKS.
	Delete(ctx context.Context, id int64) error
}

// AuthorServiceImpl implements AuthorService.
type AuthorServiceImpl struct {
	authors store.AuthorStore
	db      *sql.DB
	logger  *slog.Logger
}

var _ AuthorService = (*AuthorServiceImpl)(nil)

// NewAuthorService creates a new AuthorService.
func NewAuthorService(authors store.AuthorStore, db *sql.DB, logger *slog.Logger) *AuthorServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorServiceImpl{
		authors: authors,
		db:      db,
		logger:  logger.With("component", "author_service"),
	}
}

// Create implements AuthorService.
func (s *AuthorServiceImpl) Create(ctx context.Context, name string, bio *string) (*domain.Author, error) {
	author, err := domain.NewAuthor(name, bio, time.Now())
	if err != nil {
		if f := domainFailure(err); f != nil {
			return nil, f
		}
		return nil, fmt.Errorf("failed to build author: %w", err)
	}

	if err := s.authors.Create(ctx, author); err != nil {
		return nil, s.mapError(ctx, "create", err)
	}
	return author, nil
}

// List implements AuthorService.
func (s *AuthorServiceImpl) List(ctx context.Context, page store.Page) ([]domain.Author, int, error) {
	authors, total, err := s.authors.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, total, nil
}

// Get implements AuthorService.
func (s *AuthorServiceImpl) Get(ctx context.Context, id int64) (*domain.Author, error) {
	author, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(ctx, "get", err)
	}
	return author, nil
}

// Update implements AuthorService.
// The read and the write share one transaction.
func (s *AuthorServiceImpl) Update(ctx context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error) {
	var updated *domain.Author
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txAuthors := s.authors.WithTx(tx)

		author, err := txAuthors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := author.Apply(patch, time.Now()); err != nil {
			return err
		}
		if err := txAuthors.Update(ctx, author); err != nil {
			return err
		}
		updated = author
		return nil
	})
	if err != nil {
		if f := domainFailure(err); f != nil {
			return nil, f
		}
		return nil, s.mapError(ctx, "update", err)
	}
	return updated, nil
}

// Delete implements AuthorService.
func (s *AuthorServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.authors.Delete(ctx, id); err != nil {
		return s.mapError(ctx, "delete", err)
	}
	return nil
}

// mapError translates store errors into failures; anything unexpected is
// wrapped with the operation name.
func (s *AuthorServiceImpl) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errAuthorNotFound()
	case errors.Is(err, store.ErrDuplicate):
		return errAuthorNameExists()
	case errors.Is(err, store.ErrReferenced):
		logger.FromContextOrDefault(ctx, s.logger).Debug("author delete blocked by books")
		return errAuthorHasBooks()
	default:
		return fmt.Errorf("failed to %s author: %w", op, err)
	}
}

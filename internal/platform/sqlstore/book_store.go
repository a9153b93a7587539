package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/redact"
	"github.com/phrazzld/shelf-api/internal/store"
)

const bookColumns = "id, title, genre, publication_year, author_id, created_at, updated_at"

const bookViewSelect = `
	SELECT b.id, b.title, b.genre, b.publication_year, b.author_id, b.created_at, b.updated_at,
	       a.name, a.bio
	FROM books b
	JOIN authors a ON a.id = b.author_id
`

// BookStore implements store.BookStore.
type BookStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

var _ store.BookStore = (*BookStore)(nil)

// NewBookStore creates a BookStore over a connection or transaction.
// If logger is nil, the default logger is used.
func NewBookStore(db store.DBTX, d Dialect, logger *slog.Logger) *BookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookStore{
		db:      db,
		dialect: d,
		logger:  logger.With(slog.String("component", "book_store")),
	}
}

// WithTx implements store.BookStore.
func (s *BookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &BookStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// Create implements store.BookStore.
func (s *BookStore) Create(ctx context.Context, b *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`
		INSERT INTO books (title, genre, publication_year, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := s.db.QueryRowContext(ctx, query,
		b.Title, b.Genre, b.PublicationYear, b.AuthorID, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		err = MapError(err)
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during book creation", slog.Int64("author_id", b.AuthorID))
			return fmt.Errorf("%w: author with ID %d not found", store.ErrInvalidEntity, b.AuthorID)
		}
		log.Error("failed to create book", slog.String("error", redact.Error(err)))
		return store.NewStoreError("book", "create", "insert failed", err)
	}

	log.Info("book created", slog.Int64("book_id", b.ID), slog.Int64("author_id", b.AuthorID))
	return nil
}

// List implements store.BookStore.
func (s *BookStore) List(ctx context.Context, page store.Page) ([]domain.BookView, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, store.NewStoreError("book", "list", "count failed", MapError(err))
	}

	query := s.dialect.Rebind(bookViewSelect + `
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT ? OFFSET ?
	`)
	rows, err := s.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, store.NewStoreError("book", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	views := []domain.BookView{}
	for rows.Next() {
		v, err := scanBookView(rows)
		if err != nil {
			return nil, 0, store.NewStoreError("book", "list", "scan failed", err)
		}
		views = append(views, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, store.NewStoreError("book", "list", "iteration failed", err)
	}
	return views, total, nil
}

// GetByID implements store.BookStore.
func (s *BookStore) GetByID(ctx context.Context, id int64) (*domain.BookView, error) {
	query := s.dialect.Rebind(bookViewSelect + ` WHERE b.id = ?`)
	v, err := scanBookView(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		return nil, store.NewStoreError("book", "get", "query failed", MapError(err))
	}
	return v, nil
}

// Update implements store.BookStore.
func (s *BookStore) Update(ctx context.Context, b *domain.Book) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`
		UPDATE books
		SET title = ?, genre = ?, publication_year = ?, author_id = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := s.db.ExecContext(ctx, query,
		b.Title, b.Genre, b.PublicationYear, b.AuthorID, b.UpdatedAt, b.ID)
	if err != nil {
		err = MapError(err)
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: author with ID %d not found", store.ErrInvalidEntity, b.AuthorID)
		}
		return store.NewStoreError("book", "update", "update failed", err)
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// Delete implements store.BookStore.
func (s *BookStore) Delete(ctx context.Context, id int64) error {
	query := s.dialect.Rebind(`DELETE FROM books WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return store.NewStoreError("book", "delete", "delete failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}

func scanBook(row scanner) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Genre, &b.PublicationYear, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookView(row scanner) (*domain.BookView, error) {
	var v domain.BookView
	err := row.Scan(
		&v.ID, &v.Title, &v.Genre, &v.PublicationYear, &v.AuthorID, &v.CreatedAt, &v.UpdatedAt,
		&v.AuthorName, &v.AuthorBio,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

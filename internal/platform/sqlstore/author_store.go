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

const authorColumns = "id, name, bio, created_at, updated_at"

// AuthorStore implements store.AuthorStore.
type AuthorStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

var _ store.AuthorStore = (*AuthorStore)(nil)

// NewAuthorStore creates an AuthorStore over a connection or transaction.
// If logger is nil, the default logger is used.
func NewAuthorStore(db store.DBTX, d Dialect, logger *slog.Logger) *AuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorStore{
		db:      db,
		dialect: d,
		logger:  logger.With(slog.String("component", "author_store")),
	}
}

// WithTx implements store.AuthorStore.
func (s *AuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &AuthorStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// Create implements store.AuthorStore.
func (s *AuthorStore) Create(ctx context.Context, a *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`
		INSERT INTO authors (name, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	err := s.db.QueryRowContext(ctx, query, a.Name, a.Bio, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if err != nil {
		err = MapError(err)
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug("author name already exists", slog.String("name", a.Name))
			return store.ErrAuthorNameExists
		}
		log.Error("failed to create author", slog.String("error", redact.Error(err)))
		return store.NewStoreError("author", "create", "insert failed", err)
	}

	if a.Books == nil {
		a.Books = []domain.Book{}
	}

	log.Info("author created", slog.Int64("author_id", a.ID))
	return nil
}

// List implements store.AuthorStore.
func (s *AuthorStore) List(ctx context.Context, page store.Page) ([]domain.Author, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, store.NewStoreError("author", "list", "count failed", MapError(err))
	}

	query := s.dialect.Rebind(`
		SELECT ` + authorColumns + `
		FROM authors
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`)
	rows, err := s.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, store.NewStoreError("author", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	authors := []domain.Author{}
	ids := []int64{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, store.NewStoreError("author", "list", "scan failed", err)
		}
		authors = append(authors, *a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, store.NewStoreError("author", "list", "iteration failed", err)
	}

	books, err := s.booksByAuthor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range authors {
		if bs, ok := books[authors[i].ID]; ok {
			authors[i].Books = bs
		}
	}

	return authors, total, nil
}

// GetByID implements store.AuthorStore.
func (s *AuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`SELECT ` + authorColumns + ` FROM authors WHERE id = ?`)
	a, err := scanAuthor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("author not found", slog.Int64("author_id", id))
			return nil, store.ErrAuthorNotFound
		}
		return nil, store.NewStoreError("author", "get", "query failed", MapError(err))
	}

	books, err := s.booksByAuthor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if bs, ok := books[id]; ok {
		a.Books = bs
	}
	return a, nil
}

// Exists implements store.AuthorStore.
func (s *AuthorStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := s.dialect.Rebind(`SELECT EXISTS (SELECT 1 FROM authors WHERE id = ?)`)
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, store.NewStoreError("author", "exists", "query failed", MapError(err))
	}
	return exists, nil
}

// Update implements store.AuthorStore.
func (s *AuthorStore) Update(ctx context.Context, a *domain.Author) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`UPDATE authors SET name = ?, bio = ?, updated_at = ? WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, a.Name, a.Bio, a.UpdatedAt, a.ID)
	if err != nil {
		err = MapError(err)
		if errors.Is(err, store.ErrDuplicate) {
			return store.ErrAuthorNameExists
		}
		return store.NewStoreError("author", "update", "update failed", err)
	}
	return CheckRowsAffected(result, store.ErrAuthorNotFound)
}

// Delete implements store.AuthorStore.
func (s *AuthorStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`DELETE FROM authors WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		err = MapError(err)
		if IsForeignKeyViolation(err) {
			log.Debug("author still has books", slog.Int64("author_id", id))
			return fmt.Errorf("%w: author %d has books", store.ErrReferenced, id)
		}
		return store.NewStoreError("author", "delete", "delete failed", err)
	}
	if err := CheckRowsAffected(result, store.ErrAuthorNotFound); err != nil {
		return err
	}

	log.Info("author deleted", slog.Int64("author_id", id))
	return nil
}

func (s *AuthorStore) booksByAuthor(ctx context.Context, ids []int64) (map[int64][]domain.Book, error) {
	out := make(map[int64][]domain.Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
		out[id] = []domain.Book{}
	}

	query := s.dialect.Rebind(`
		SELECT ` + bookColumns + `
		FROM books
		WHERE author_id IN (` + placeholders(len(ids)) + `)
		ORDER BY created_at DESC, id DESC
	`)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("book", "list", "query by author failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, store.NewStoreError("book", "list", "scan failed", err)
		}
		out[b.AuthorID] = append(out[b.AuthorID], *b)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("book", "list", "iteration failed", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row scanner) (*domain.Author, error) {
	a := &domain.Author{Books: []domain.Book{}}
	if err := row.Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

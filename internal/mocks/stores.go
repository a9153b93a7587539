package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	CreateFn                  func(ctx context.Context, user *domain.User) error
	GetByEmailFn              func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailOrUsernameFn func(ctx context.Context, email, username string) (bool, error)

	// TxCount counts WithTx calls.
	TxCount int
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

// ExistsByEmailOrUsername implements store.UserStore.
func (m *MockUserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	if m.ExistsByEmailOrUsernameFn != nil {
		return m.ExistsByEmailOrUsernameFn(ctx, email, username)
	}
	return false, nil
}

// WithTx implements store.UserStore. The mock is returned unchanged.
func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	m.TxCount++
	return m
}

// MockAuthorStore implements store.AuthorStore for testing.
type MockAuthorStore struct {
	CreateFn  func(ctx context.Context, author *domain.Author) error
	ListFn    func(ctx context.Context, page store.Page) ([]domain.Author, int, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Author, error)
	ExistsFn  func(ctx context.Context, id int64) (bool, error)
	UpdateFn  func(ctx context.Context, author *domain.Author) error
	DeleteFn  func(ctx context.Context, id int64) error

	TxCount int
}

var _ store.AuthorStore = (*MockAuthorStore)(nil)

// Create implements store.AuthorStore.
func (m *MockAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, author)
	}
	return nil
}

// List implements store.AuthorStore.
func (m *MockAuthorStore) List(ctx context.Context, page store.Page) ([]domain.Author, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return []domain.Author{}, 0, nil
}

// GetByID implements store.AuthorStore.
func (m *MockAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrAuthorNotFound
}

// Exists implements store.AuthorStore.
func (m *MockAuthorStore) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	return false, nil
}

// Update implements store.AuthorStore.
func (m *MockAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, author)
	}
	return nil
}

// Delete implements store.AuthorStore.
func (m *MockAuthorStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// WithTx implements store.AuthorStore. The mock is returned unchanged.
func (m *MockAuthorStore) WithTx(*sql.Tx) store.AuthorStore {
	m.TxCount++
	return m
}

// MockBookStore implements store.BookStore for testing.
type MockBookStore struct {
	CreateFn  func(ctx context.Context, book *domain.Book) error
	ListFn    func(ctx context.Context, page store.Page) ([]domain.BookView, int, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.BookView, error)
	UpdateFn  func(ctx context.Context, book *domain.Book) error
	DeleteFn  func(ctx context.Context, id int64) error

	TxCount int
}

var _ store.BookStore = (*MockBookStore)(nil)

// Create implements store.BookStore.
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}
	return nil
}

// List implements store.BookStore.
func (m *MockBookStore) List(ctx context.Context, page store.Page) ([]domain.BookView, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return []domain.BookView{}, 0, nil
}

// GetByID implements store.BookStore.
func (m *MockBookStore) GetByID(ctx context.Context, id int64) (*domain.BookView, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrBookNotFound
}

// Update implements store.BookStore.
func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, book)
	}
	return nil
}

// Delete implements store.BookStore.
func (m *MockBookStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// WithTx implements store.BookStore. The mock is returned unchanged.
func (m *MockBookStore) WithTx(*sql.Tx) store.BookStore {
	m.TxCount++
	return m
}

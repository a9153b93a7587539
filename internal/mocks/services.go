package mocks

import (
	"context"

	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/service"
	"github.com/phrazzld/shelf-api/internal/store"
)

// MockUserService implements service.UserService for testing.
type MockUserService struct {
	RegisterFn func(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	LoginFn    func(ctx context.Context, email, password string) (*service.LoginResult, error)
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService.
func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, in)
	}
	return &domain.User{ID: 1, Username: in.Username, Email: in.Email, Role: domain.RoleUser}, nil
}

// Login implements service.UserService.
func (m *MockUserService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return &service.LoginResult{Token: "token", User: &domain.User{ID: 1, Email: email}}, nil
}

// MockAuthorService implements service.AuthorService for testing.
// Calls records every invoked method name in order.
type MockAuthorService struct {
	CreateFn func(ctx context.Context, name string, bio *string) (*domain.Author, error)
	ListFn   func(ctx context.Context, page store.Page) ([]domain.Author, int, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Author, error)
	UpdateFn func(ctx context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error)
	DeleteFn func(ctx context.Context, id int64) error

	Calls []string
}

var _ service.AuthorService = (*MockAuthorService)(nil)

// Create implements service.AuthorService.
func (m *MockAuthorService) Create(ctx context.Context, name string, bio *string) (*domain.Author, error) {
	m.Calls = append(m.Calls, "Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name, bio)
	}
	return &domain.Author{ID: 1, Name: name, Bio: bio, Books: []domain.Book{}}, nil
}

// List implements service.AuthorService.
func (m *MockAuthorService) List(ctx context.Context, page store.Page) ([]domain.Author, int, error) {
	m.Calls = append(m.Calls, "List")
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return []domain.Author{}, 0, nil
}

// Get implements service.AuthorService.
func (m *MockAuthorService) Get(ctx context.Context, id int64) (*domain.Author, error) {
	m.Calls = append(m.Calls, "Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return &domain.Author{ID: id, Books: []domain.Book{}}, nil
}

// Update implements service.AuthorService.
func (m *MockAuthorService) Update(ctx context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error) {
	m.Calls = append(m.Calls, "Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return &domain.Author{ID: id, Books: []domain.Book{}}, nil
}

// Delete implements service.AuthorService.
func (m *MockAuthorService) Delete(ctx context.Context, id int64) error {
	m.Calls = append(m.Calls, "Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// MockBookService implements service.BookService for testing.
type MockBookService struct {
	CreateFn func(ctx context.Context, in service.BookInput) (*domain.BookView, error)
	ListFn   func(ctx context.Context, page store.Page) ([]domain.BookView, int, error)
	GetFn    func(ctx context.Context, id int64) (*domain.BookView, error)
	UpdateFn func(ctx context.Context, id int64, patch domain.BookPatch) (*domain.BookView, error)
	DeleteFn func(ctx context.Context, id int64) error
}

var _ service.BookService = (*MockBookService)(nil)

// Create implements service.BookService.
func (m *MockBookService) Create(ctx context.Context, in service.BookInput) (*domain.BookView, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return &domain.BookView{Book: domain.Book{ID: 1, Title: in.Title, AuthorID: in.AuthorID}}, nil
}

// List implements service.BookService.
func (m *MockBookService) List(ctx context.Context, page store.Page) ([]domain.BookView, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return []domain.BookView{}, 0, nil
}

// Get implements service.BookService.
func (m *MockBookService) Get(ctx context.Context, id int64) (*domain.BookView, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return &domain.BookView{Book: domain.Book{ID: id}}, nil
}

// Update implements service.BookService.
func (m *MockBookService) Update(ctx context.Context, id int64, patch domain.BookPatch) (*domain.BookView, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return &domain.BookView{Book: domain.Book{ID: id}}, nil
}

// Delete implements service.BookService.
func (m *MockBookService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

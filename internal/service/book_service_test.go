package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/mocks"
	"github.com/phrazzld/shelf-api/internal/service"
	"github.com/phrazzld/shelf-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existingAuthors(ids ...int64) *mocks.MockAuthorStore {
	return &mocks.MockAuthorStore{
		ExistsFn: func(_ context.Context, id int64) (bool, error) {
			for _, known := range ids {
				if known == id {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

func TestBookService_Create(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		books := &mocks.MockBookStore{
			CreateFn: func(_ context.Context, b *domain.Book) error {
				b.ID = 11
				return nil
			},
			GetByIDFn: func(_ context.Context, id int64) (*domain.BookView, error) {
				return &domain.BookView{Book: domain.Book{ID: id, Title: "Kindred", AuthorID: 1}, AuthorName: "Octavia Butler"}, nil
			},
		}
		svc := service.NewBookService(books, existingAuthors(1), db, nil)

		v, err := svc.Create(context.Background(), service.BookInput{Title: "Kindred", PublicationYear: ptr(1979), AuthorID: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(11), v.ID)
		assert.Equal(t, "Octavia Butler", v.AuthorName)
	})

	t.Run("missing author", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		books := &mocks.MockBookStore{
			CreateFn: func(context.Context, *domain.Book) error {
				t.Fatal("create must not be called")
				return nil
			},
		}
		svc := service.NewBookService(books, existingAuthors(), db, nil)

		_, err := svc.Create(context.Background(), service.BookInput{Title: "Kindred", AuthorID: 99})
		assertFailure(t, err, http.StatusNotFound, apperr.CodeBookAuthorNotFound)
	})

	t.Run("author removed concurrently", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		books := &mocks.MockBookStore{
			CreateFn: func(context.Context, *domain.Book) error { return store.ErrInvalidEntity },
		}
		svc := service.NewBookService(books, existingAuthors(1), db, nil)

		_, err := svc.Create(context.Background(), service.BookInput{Title: "Kindred", AuthorID: 1})
		assertFailure(t, err, http.StatusNotFound, apperr.CodeBookAuthorNotFound)
	})

	t.Run("year before 1000", func(t *testing.T) {
		t.Parallel()

		svc := service.NewBookService(&mocks.MockBookStore{}, existingAuthors(1), nil, nil)
		_, err := svc.Create(context.Background(), service.BookInput{Title: "Beowulf", PublicationYear: ptr(700), AuthorID: 1})
		assertFailure(t, err, http.StatusBadRequest, apperr.CodeInvalidRequestBody)
	})

	t.Run("year after 9999", func(t *testing.T) {
		t.Parallel()

		svc := service.NewBookService(&mocks.MockBookStore{}, existingAuthors(1), nil, nil)
		_, err := svc.Create(context.Background(), service.BookInput{Title: "Far", PublicationYear: ptr(10000), AuthorID: 1})
		assertFailure(t, err, http.StatusBadRequest, apperr.CodeInvalidRequestBody)
	})
}

func TestBookService_Update(t *testing.T) {
	t.Parallel()

	current := func(_ context.Context, id int64) (*domain.BookView, error) {
		return &domain.BookView{Book: domain.Book{ID: id, Title: "Dawn", AuthorID: 1}}, nil
	}

	t.Run("changes author", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var saved domain.Book
		books := &mocks.MockBookStore{
			GetByIDFn: current,
			UpdateFn: func(_ context.Context, b *domain.Book) error {
				saved = *b
				return nil
			},
		}
		svc := service.NewBookService(books, existingAuthors(1, 2), db, nil)

		_, err := svc.Update(context.Background(), 4, domain.BookPatch{AuthorID: ptr(int64(2)), Genre: ptr("sf")})
		require.NoError(t, err)
		assert.Equal(t, int64(2), saved.AuthorID)
		assert.Equal(t, "Dawn", saved.Title)
		assert.Equal(t, "sf", *saved.Genre)
	})

	t.Run("unknown new author", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		books := &mocks.MockBookStore{GetByIDFn: current}
		svc := service.NewBookService(books, existingAuthors(1), db, nil)

		_, err := svc.Update(context.Background(), 4, domain.BookPatch{AuthorID: ptr(int64(3))})
		assertFailure(t, err, http.StatusNotFound, apperr.CodeBookAuthorNotFound)
	})

	t.Run("missing book", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := service.NewBookService(&mocks.MockBookStore{}, existingAuthors(1), db, nil)
		_, err := svc.Update(context.Background(), 4, domain.BookPatch{Title: ptr("x")})
		assertFailure(t, err, http.StatusNotFound, apperr.CodeBookNotFound)
	})
}

func TestBookService_GetAndDelete(t *testing.T) {
	t.Parallel()

	svc := service.NewBookService(&mocks.MockBookStore{
		DeleteFn: func(_ context.Context, id int64) error {
			if id == 1 {
				return nil
			}
			return store.ErrBookNotFound
		},
	}, existingAuthors(), nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	assertFailure(t, err, http.StatusNotFound, apperr.CodeBookNotFound)
	require.NoError(t, svc.Delete(ctx, 1))
	assertFailure(t, svc.Delete(ctx, 2), http.StatusNotFound, apperr.CodeBookNotFound)
}

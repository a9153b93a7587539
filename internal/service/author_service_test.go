package service_test

import (
	"context"
	"errors"
	"fmt"
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

func TestAuthorService_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		storeErr error
		wantCode string
	}{
		{name: "created"},
		{name: "duplicate name", storeErr: store.ErrAuthorNameExists, wantCode: apperr.CodeAuthorNameExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			authors := &mocks.MockAuthorStore{
				CreateFn: func(_ context.Context, a *domain.Author) error {
					a.ID = 1
					return tt.storeErr
				},
			}
			svc := service.NewAuthorService(authors, nil, nil)

			a, err := svc.Create(context.Background(), "Octavia Butler", ptr("Kindred"))
			if tt.wantCode != "" {
				assertFailure(t, err, http.StatusConflict, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), a.ID)
			assert.Empty(t, a.Books)
		})
	}
}

func TestAuthorService_GetAndDelete(t *testing.T) {
	t.Parallel()

	authors := &mocks.MockAuthorStore{
		DeleteFn: func(_ context.Context, id int64) error {
			switch id {
			case 1:
				return nil
			case 2:
				return fmt.Errorf("%w: author 2 has books", store.ErrReferenced)
			case 3:
				return errors.New("disk full")
			default:
				return store.ErrAuthorNotFound
			}
		},
	}
	svc := service.NewAuthorService(authors, nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, 404)
	assertFailure(t, err, http.StatusNotFound, apperr.CodeAuthorNotFound)

	require.NoError(t, svc.Delete(ctx, 1))
	assertFailure(t, svc.Delete(ctx, 2), http.StatusConflict, apperr.CodeAuthorHasBooks)
	assertFailure(t, svc.Delete(ctx, 404), http.StatusNotFound, apperr.CodeAuthorNotFound)

	err = svc.Delete(ctx, 3)
	require.Error(t, err)
	_, isFailure := apperr.As(err)
	assert.False(t, isFailure)
	assert.ErrorContains(t, err, "failed to delete author")
}

func TestAuthorService_Update(t *testing.T) {
	t.Parallel()

	t.Run("partial update", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var saved *domain.Author
		authors := &mocks.MockAuthorStore{
			GetByIDFn: func(_ context.Context, id int64) (*domain.Author, error) {
				return &domain.Author{ID: id, Name: "Ursula", Bio: ptr("old"), Books: []domain.Book{}}, nil
			},
			UpdateFn: func(_ context.Context, a *domain.Author) error {
				saved = a
				return nil
			},
		}
		svc := service.NewAuthorService(authors, db, nil)

		a, err := svc.Update(context.Background(), 5, domain.AuthorPatch{Bio: ptr("new")})
		require.NoError(t, err)
		assert.Equal(t, "Ursula", a.Name)
		assert.Equal(t, "new", *a.Bio)
		assert.Same(t, saved, a)
		assert.Equal(t, 1, authors.TxCount)
	})

	t.Run("missing author", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := service.NewAuthorService(&mocks.MockAuthorStore{}, db, nil)
		_, err := svc.Update(context.Background(), 5, domain.AuthorPatch{Name: ptr("x")})
		assertFailure(t, err, http.StatusNotFound, apperr.CodeAuthorNotFound)
	})

	t.Run("name taken", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		authors := &mocks.MockAuthorStore{
			GetByIDFn: func(_ context.Context, id int64) (*domain.Author, error) {
				return &domain.Author{ID: id, Name: "Ursula"}, nil
			},
			UpdateFn: func(context.Context, *domain.Author) error { return store.ErrAuthorNameExists },
		}
		svc := service.NewAuthorService(authors, db, nil)
		_, err := svc.Update(context.Background(), 5, domain.AuthorPatch{Name: ptr("Octavia")})
		assertFailure(t, err, http.StatusConflict, apperr.CodeAuthorNameExists)
	})
}

func TestAuthorService_List(t *testing.T) {
	t.Parallel()

	var gotPage store.Page
	authors := &mocks.MockAuthorStore{
		ListFn: func(_ context.Context, p store.Page) ([]domain.Author, int, error) {
			gotPage = p
			return []domain.Author{{ID: 1, Name: "A"}}, 7, nil
		},
	}
	svc := service.NewAuthorService(authors, nil, nil)

	list, total, err := svc.List(context.Background(), store.Page{Number: 2, Size: 5})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 7, total)
	assert.Equal(t, store.Page{Number: 2, Size: 5}, gotPage)
}

package sqlstore

import (
	"context"
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func createAuthor(t *testing.T, s *AuthorStore, name string, at time.Time) *domain.Author {
	t.Helper()
	a, err := domain.NewAuthor(name, strPtr(name+" bio"), at)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), a))
	return a
}

func createBook(t *testing.T, s *BookStore, title string, authorID int64, at time.Time) *domain.Book {
	t.Helper()
	b, err := domain.NewBook(title, nil, intPtr(1970), authorID, at)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), b))
	return b
}

func TestAuthorStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, d := newTestDB(t)
	authors := NewAuthorStore(db, d, nil)
	books := NewBookStore(db, d, nil)

	first := createAuthor(t, authors, "Octavia Butler", testNow)
	second := createAuthor(t, authors, "Ursula K. Le Guin", testNow.Add(time.Minute))
	assert.Positive(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	t.Run("duplicate name", func(t *testing.T) {
		a, err := domain.NewAuthor("Octavia Butler", nil, testNow)
		require.NoError(t, err)
		assert.ErrorIs(t, authors.Create(ctx, a), store.ErrAuthorNameExists)
	})

	createBook(t, books, "Kindred", first.ID, testNow)
	createBook(t, books, "Dawn", first.ID, testNow.Add(time.Second))

	t.Run("get with books", func(t *testing.T) {
		got, err := authors.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Octavia Butler", got.Name)
		require.NotNil(t, got.Bio)
		assert.Equal(t, "Octavia Butler bio", *got.Bio)
		require.Len(t, got.Books, 2)
		assert.Equal(t, "Dawn", got.Books[0].Title)
		assert.True(t, got.CreatedAt.Equal(testNow))
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := authors.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, store.ErrAuthorNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		list, total, err := authors.List(ctx, store.Page{Number: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Empty(t, list[0].Books)
		assert.Len(t, list[1].Books, 2)

		page2, total, err := authors.List(ctx, store.Page{Number: 2, Size: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, page2, 1)
		assert.Equal(t, first.ID, page2[0].ID)

		beyond, total, err := authors.List(ctx, store.Page{Number: math.MaxInt, Size: 100})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Empty(t, beyond)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := authors.Exists(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = authors.Exists(ctx, 9999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update", func(t *testing.T) {
		got, err := authors.GetByID(ctx, second.ID)
		require.NoError(t, err)
		require.NoError(t, got.Apply(domain.AuthorPatch{Bio: strPtr("Earthsea")}, testNow.Add(time.Hour)))
		require.NoError(t, authors.Update(ctx, got))

		reloaded, err := authors.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "Earthsea", *reloaded.Bio)

		reloaded.Name = "Octavia Butler"
		assert.ErrorIs(t, authors.Update(ctx, reloaded), store.ErrAuthorNameExists)

		reloaded.ID = 9999
		reloaded.Name = "Nobody"
		assert.ErrorIs(t, authors.Update(ctx, reloaded), store.ErrAuthorNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, authors.Delete(ctx, first.ID), store.ErrReferenced)
		require.NoError(t, authors.Delete(ctx, second.ID))
		assert.ErrorIs(t, authors.Delete(ctx, second.ID), store.ErrAuthorNotFound)
	})
}

func TestBookStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, d := newTestDB(t)
	authors := NewAuthorStore(db, d, nil)
	books := NewBookStore(db, d, nil)

	author := createAuthor(t, authors, "N. K. Jemisin", testNow)
	other := createAuthor(t, authors, "Ted Chiang", testNow)

	t.Run("create with missing author", func(t *testing.T) {
		b, err := domain.NewBook("Orphan", nil, nil, 9999, testNow)
		require.NoError(t, err)
		assert.ErrorIs(t, books.Create(ctx, b), store.ErrInvalidEntity)
	})

	first := createBook(t, books, "The Fifth Season", author.ID, testNow)
	second := createBook(t, books, "The Obelisk Gate", author.ID, testNow.Add(time.Minute))

	t.Run("get view", func(t *testing.T) {
		v, err := books.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "The Fifth Season", v.Title)
		assert.Equal(t, "N. K. Jemisin", v.AuthorName)
		require.NotNil(t, v.AuthorBio)
		assert.Nil(t, v.Genre)
		require.NotNil(t, v.PublicationYear)
		assert.Equal(t, 1970, *v.PublicationYear)
	})

	t.Run("list", func(t *testing.T) {
		list, total, err := books.List(ctx, store.Page{Number: 1, Size: 20})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		b := first
		require.NoError(t, b.Apply(domain.BookPatch{Genre: strPtr("fantasy"), AuthorID: &other.ID}, testNow.Add(time.Hour)))
		require.NoError(t, books.Update(ctx, b))

		v, err := books.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "fantasy", *v.Genre)
		assert.Equal(t, "Ted Chiang", v.AuthorName)

		missing := int64(9999)
		require.NoError(t, b.Apply(domain.BookPatch{AuthorID: &missing}, testNow))
		assert.ErrorIs(t, books.Update(ctx, b), store.ErrInvalidEntity)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, books.Delete(ctx, second.ID))
		assert.ErrorIs(t, books.Delete(ctx, second.ID), store.ErrBookNotFound)
		_, err := books.GetByID(ctx, second.ID)
		assert.ErrorIs(t, err, store.ErrBookNotFound)
	})
}

func TestUserStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, d := newTestDB(t)
	users := NewUserStore(db, d, nil)

	u, err := domain.NewUser("reader", "reader@example.com", "$2a$04$hash", testNow)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, u))
	assert.Positive(t, u.ID)

	dup, err := domain.NewUser("reader", "other@example.com", "$2a$04$hash", testNow)
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), store.ErrUserExists)

	got, err := users.GetByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "$2a$04$hash", got.HashedPassword)
	assert.Equal(t, domain.RoleUser, got.Role)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	exists, err := users.ExistsByEmailOrUsername(ctx, "new@example.com", "reader")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.ExistsByEmailOrUsername(ctx, "new@example.com", "newbie")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWithTx_Rollback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, d := newTestDB(t)
	authors := NewAuthorStore(db, d, nil)

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		a, err := domain.NewAuthor("Rolled Back", nil, testNow)
		require.NoError(t, err)
		require.NoError(t, authors.WithTx(tx).Create(ctx, a))
		return store.ErrInvalidEntity
	})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	_, total, err := authors.List(ctx, store.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

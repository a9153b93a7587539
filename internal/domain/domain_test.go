package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		hash     string
		wantErr  error
	}{
		{name: "valid", username: "reader", email: " Reader@Example.com ", hash: "$2a$10$x"},
		{name: "empty username", username: "", email: "a@b.co", hash: "h", wantErr: ErrEmptyUsername},
		{name: "empty email", username: "u", email: " ", hash: "h", wantErr: ErrEmptyEmail},
		{name: "missing hash", username: "u", email: "a@b.co", wantErr: ErrEmptyHashedPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u, err := NewUser(tt.username, tt.email, tt.hash, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "reader@example.com", u.Email)
			assert.Equal(t, RoleUser, u.Role)
			assert.Equal(t, Principal{Username: "reader", Email: "reader@example.com", Role: RoleUser}, u.Principal())
		})
	}
}

func TestUserJSONHidesPassword(t *testing.T) {
	t.Parallel()

	u, err := NewUser("reader", "r@example.com", "secret-hash", now)
	require.NoError(t, err)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-hash")
}

func TestAuthor(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		a, err := NewAuthor("Ursula K. Le Guin", nil, now)
		require.NoError(t, err)
		assert.Empty(t, a.Books)
		assert.NotNil(t, a.Books)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := NewAuthor("", nil, now)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("name too long", func(t *testing.T) {
		t.Parallel()
		_, err := NewAuthor(strings.Repeat("é", MaxAuthorNameLength+1), nil, now)
		assert.ErrorIs(t, err, ErrNameTooLong)
	})

	t.Run("apply patch", func(t *testing.T) {
		t.Parallel()
		a, err := NewAuthor("Old", ptr("bio"), now)
		require.NoError(t, err)

		later := now.Add(time.Hour)
		require.NoError(t, a.Apply(AuthorPatch{Name: ptr("New")}, later))
		assert.Equal(t, "New", a.Name)
		assert.Equal(t, "bio", *a.Bio)
		assert.Equal(t, later, a.UpdatedAt)

		assert.ErrorIs(t, a.Apply(AuthorPatch{Name: ptr("")}, later), ErrEmptyName)
	})
}

func TestBook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		year     *int
		authorID int64
		wantErr  error
	}{
		{name: "valid", title: "Earthsea", year: ptr(1968), authorID: 1},
		{name: "no year", title: "Earthsea", authorID: 1},
		{name: "empty title", title: "", authorID: 1, wantErr: ErrEmptyTitle},
		{name: "bad author", title: "T", authorID: 0, wantErr: ErrInvalidAuthorID},
		{name: "bad year", title: "T", year: ptr(999), authorID: 1, wantErr: ErrInvalidYear},
		{name: "year past 9999", title: "T", year: ptr(10000), authorID: 1, wantErr: ErrInvalidYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewBook(tt.title, nil, tt.year, tt.authorID, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestBookViewJSON(t *testing.T) {
	t.Parallel()

	v := BookView{
		Book:       Book{ID: 3, Title: "Earthsea", AuthorID: 1},
		AuthorName: "Le Guin",
		AuthorBio:  ptr("writer"),
	}

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "Earthsea", got["title"])
	assert.Equal(t, float64(1), got["authorId"])
	assert.Equal(t, "Le Guin", got["authorName"])
	assert.Equal(t, "writer", got["bio"])
}

package service_test

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockDB returns a sqlmock connection for services that open transactions.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func assertFailure(t *testing.T, err error, status int, code string) {
	t.Helper()

	f, ok := apperr.As(err)
	require.True(t, ok, "expected a failure, got %v", err)
	assert.Equal(t, status, f.HTTPStatus())
	assert.Equal(t, code, f.Code())
}

func ptr[T any](v T) *T { return &v }

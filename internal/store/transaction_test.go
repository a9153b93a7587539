package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("function failed")

	tests := []struct {
		name    string
		expect  func(m sqlmock.Sqlmock)
		fn      TxFn
		wantErr error
	}{
		{
			name: "commit on success",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *sql.Tx) error { return nil },
		},
		{
			name: "rollback on error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback()
			},
			fn:      func(ctx context.Context, tx *sql.Tx) error { return fnErr },
			wantErr: fnErr,
		},
		{
			name: "begin fails",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin().WillReturnError(errors.New("begin failed"))
			},
			fn:      func(ctx context.Context, tx *sql.Tx) error { return nil },
			wantErr: errors.New("failed to begin transaction: begin failed"),
		},
		{
			name: "rollback fails keeps original",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback().WillReturnError(errors.New("rollback failed"))
			},
			fn:      func(ctx context.Context, tx *sql.Tx) error { return fnErr },
			wantErr: fnErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.expect(mock)
			err = RunInTransaction(context.Background(), db, tt.fn)

			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(err, tt.wantErr):
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransaction_Panic(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Page{Number: 1, Size: 20}.Offset())
	assert.Equal(t, 40, Page{Number: 3, Size: 20}.Offset())
	assert.Equal(t, 0, Page{}.Offset())
	assert.Equal(t, DefaultPageSize, Page{}.Limit())
	assert.Equal(t, 5, Page{Number: 1, Size: 5}.Limit())
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	err := NewStoreError("author", "create", "insert failed", ErrAuthorNameExists)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "create operation on author failed: insert failed: entity already exists: author name", err.Error())
	assert.Equal(t, "delete operation on book failed: gone", NewStoreError("book", "delete", "gone", nil).Error())
}

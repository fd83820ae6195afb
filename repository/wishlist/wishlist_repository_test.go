package wishlist

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (WishlistRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWishlistRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestSQL_Add(t *testing.T) {
	tests := []struct {
		name    string
		result  func(e *sqlmock.ExpectedExec)
		wantID  uint64
		wantErr error
	}{
		{
			name:   "inserted",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(21, 1)) },
			wantID: 21,
		},
		{
			name: "already saved",
			result: func(e *sqlmock.ExpectedExec) {
				e.WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-5' for key 'uq_wish_list'"})
			},
			wantErr: ErrDuplicate,
		},
		{
			name: "other mysql error passes through",
			result: func(e *sqlmock.ExpectedExec) {
				e.WillReturnError(&mysql.MySQLError{Number: 1452, Message: "foreign key"})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.result(mock.ExpectExec(regexp.QuoteMeta(insertWishlist)).WithArgs(1, 5))

			id, err := repo.Add(context.Background(), 1, 5)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantID == 0:
				var myErr *mysql.MySQLError
				require.True(t, errors.As(err, &myErr))
				assert.False(t, errors.Is(err, ErrDuplicate))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQL_Remove(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "removed", affected: 1},
		{name: "not in wishlist", affected: 0, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(regexp.QuoteMeta(deleteWishlist)).
				WithArgs(1, 5).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Remove(context.Background(), 1, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQL_ListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(listWishlist)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "title", "cover_image_url", "price"}).
			AddRow(1, 5, "Lamp", nil, 12.5).
			AddRow(2, 6, "Desk", "https://cdn.example.com/desk.png", 80.0))

	items, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].CoverImageURL)
	assert.Equal(t, "Desk", items[1].Title)
	require.NotNil(t, items[1].CoverImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

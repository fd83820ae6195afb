package review

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewCols = []string{"id", "user_id", "product_id", "rating", "title", "content", "created_at", "updated_at", "author_username"}

func newMockRepo(t *testing.T) (ReviewRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewReviewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestSQL_GetByID(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	t.Run("author joined", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(reviewSelect + " WHERE r.id = ?")).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(3, 1, 5, 4, "Nice", "Works", now, now, "jane"))

		got, err := repo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.ReviewAuthor{ID: 1, Username: "jane"}, got.Author)
		assert.Equal(t, 4, got.Rating)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(reviewSelect + " WHERE r.id = ?")).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(reviewCols))

		got, err := repo.GetByID(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSQL_UpdateAndDelete(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	entity := &model.ReviewEntity{ID: 3, Rating: 5, Title: "Great", Content: "Still works", UpdatedAt: now}

	tests := []struct {
		name     string
		query    string
		run      func(repo ReviewRepository) error
		affected int64
		wantErr  error
	}{
		{
			name:     "update",
			query:    updateReview,
			run:      func(repo ReviewRepository) error { return repo.Update(context.Background(), entity) },
			affected: 1,
		},
		{
			name:     "update of a deleted row",
			query:    updateReview,
			run:      func(repo ReviewRepository) error { return repo.Update(context.Background(), entity) },
			affected: 0,
			wantErr:  ErrNotFound,
		},
		{
			name:     "delete",
			query:    deleteReview,
			run:      func(repo ReviewRepository) error { return repo.Delete(context.Background(), 3) },
			affected: 1,
		},
		{
			name:     "delete of a deleted row",
			query:    deleteReview,
			run:      func(repo ReviewRepository) error { return repo.Delete(context.Background(), 3) },
			affected: 0,
			wantErr:  ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := tt.run(repo)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQL_ListByProduct(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(reviewSelect + " WHERE r.product_id = ? ORDER BY r.created_at DESC, r.id DESC")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(reviewCols).
			AddRow(4, 2, 5, 3, "Ok", "Fine", now, now, "").
			AddRow(3, 1, 5, 5, "Great", "Love it", now, now, "jane"))

	got, err := repo.ListByProduct(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "", got[0].Author.Username)
	assert.Equal(t, uint64(2), got[0].Author.ID)
	assert.Equal(t, "jane", got[1].Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

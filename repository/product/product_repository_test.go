package product

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "seller_id", "title", "description", "price", "cover_image_url", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (ProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewProductRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestSQL_List(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     model.ProductQuery
		countSQL  string
		selectSQL string
		args      []any
	}{
		{
			name:      "search sorted by price desc",
			query:     model.ProductQuery{Page: 2, PerPage: 5, Search: "Lamp", SortBy: "price", SortOrder: "desc"},
			countSQL:  "SELECT COUNT(*) FROM products p WHERE (LOWER(p.title) LIKE ? OR LOWER(p.description) LIKE ?)",
			selectSQL: "SELECT " + productColumns + " FROM products p WHERE (LOWER(p.title) LIKE ? OR LOWER(p.description) LIKE ?) ORDER BY p.price DESC LIMIT ? OFFSET ?",
			args:      []any{"%lamp%", "%lamp%"},
		},
		{
			name:      "unknown sort falls back to id",
			query:     model.ProductQuery{Page: 1, PerPage: 10, SortBy: "password"},
			countSQL:  "SELECT COUNT(*) FROM products p",
			selectSQL: "SELECT " + productColumns + " FROM products p ORDER BY p.id ASC LIMIT ? OFFSET ?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta(tt.countSQL)).
				WithArgs(toDriver(tt.args)...).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

			selectArgs := append(append([]any{}, tt.args...), tt.query.PerPage, (tt.query.Page-1)*tt.query.PerPage)
			mock.ExpectQuery(regexp.QuoteMeta(tt.selectSQL)).
				WithArgs(toDriver(selectArgs)...).
				WillReturnRows(sqlmock.NewRows(productCols).
					AddRow(1, 2, "Desk Lamp", "warm light", 25.5, nil, now, now))

			items, total, err := repo.List(context.Background(), &tt.query)
			require.NoError(t, err)
			assert.Equal(t, int64(6), total)
			require.Len(t, items, 1)
			assert.Equal(t, "Desk Lamp", items[0].Title)
			assert.Nil(t, items[0].CoverImageURL)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func toDriver(args []any) []driver.Value {
	out := make([]driver.Value, 0, len(args))
	for _, a := range args {
		out = append(out, equalArg{want: a})
	}
	return out
}

// equalArg compares after normalising ints, which the driver widens to int64.
type equalArg struct{ want any }

func (e equalArg) Match(v driver.Value) bool {
	if n, ok := e.want.(int); ok {
		return v == int64(n)
	}
	return v == e.want
}

func TestSQL_GetByID(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	cols := append(append([]string{}, productCols...), "seller_username")

	t.Run("found with seller", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		cover := "https://cdn.example.com/lamp.png"
		mock.ExpectQuery(regexp.QuoteMeta(getProductDetail)).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(3, 9, "Lamp", "", 10.0, cover, now, now, "east"))

		got, err := repo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.Seller)
		assert.Equal(t, "east", got.Seller.Username)
		assert.Equal(t, uint64(9), got.Seller.ID)
		require.NotNil(t, got.CoverImageURL)
		assert.Equal(t, cover, *got.CoverImageURL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing seller", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getProductDetail)).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(3, 9, "Lamp", "", 10.0, nil, now, now, ""))

		got, err := repo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Nil(t, got.Seller)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getProductDetail)).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(cols))

		got, err := repo.GetByID(context.Background(), 404)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSQL_CreateAndDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(insertProduct)).
		WithArgs(sqlmock.AnyArg(), "Chair", "oak", 49.0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteProduct)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p, err := repo.Create(context.Background(), &model.ProductEntity{SellerID: 2, Title: "Chair", Description: "oak", Price: 49, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.ID)

	require.NoError(t, repo.Delete(context.Background(), p.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package order

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderCols     = []string{"id", "user_id", "status", "total_price", "created_at"}
	orderItemCols = []string{"product_id", "product_title", "quantity", "price", "subtotal"}
)

func newMockRepo(t *testing.T) (OrderRepository, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	conn := sqlx.NewDb(db, "sqlmock")
	return NewOrderRepository(conn), conn, mock
}

func TestSQL_ListByUser(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(listOrders)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(8, 1, 2, 105.0, now).
			AddRow(7, 1, 1, 25.0, now))
	mock.ExpectQuery(regexp.QuoteMeta(listOrderItems)).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows(orderItemCols).
			AddRow(5, "Lamp", 2, 12.5, 25.0).
			AddRow(6, "Desk", 1, 80.0, 80.0))
	mock.ExpectQuery(regexp.QuoteMeta(listOrderItems)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(orderItemCols))

	orders, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, constant.OrderStatusConfirmed, orders[0].Status)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, model.OrderItem{ProductID: 6, ProductTitle: "Desk", Quantity: 1, Price: 80, Subtotal: 80}, orders[0].Items[1])
	assert.Equal(t, constant.OrderStatusPending, orders[1].Status)
	assert.NotNil(t, orders[1].Items)
	assert.Empty(t, orders[1].Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_GetOrderDetailTx(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	t.Run("locks the row", func(t *testing.T) {
		repo, conn, mock := newMockRepo(t)
		require.Contains(t, getOrder, "FOR UPDATE")
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(getOrder)).
			WithArgs(8).
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(8, 1, 1, 105.0, now))
		mock.ExpectCommit()

		tx, err := conn.Beginx()
		require.NoError(t, err)
		got, err := repo.GetOrderDetailTx(context.Background(), tx, 8)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		require.NotNil(t, got)
		assert.Equal(t, constant.OrderStatusPending, got.Status)
		assert.Equal(t, 105.0, got.TotalPrice)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, conn, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(getOrder)).
			WithArgs(404).
			WillReturnRows(sqlmock.NewRows(orderCols))
		mock.ExpectRollback()

		tx, err := conn.Beginx()
		require.NoError(t, err)
		got, err := repo.GetOrderDetailTx(context.Background(), tx, 404)
		require.NoError(t, err)
		assert.Nil(t, got)
		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQL_InsertOrderWithItemsTx(t *testing.T) {
	repo, conn, mock := newMockRepo(t)
	items := []model.OrderItem{
		{ProductID: 5, ProductTitle: "Lamp", Quantity: 2, Price: 12.5, Subtotal: 25},
		{ProductID: 6, ProductTitle: "Desk", Quantity: 1, Price: 80, Subtotal: 80},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertOrder)).
		WithArgs(1, constant.OrderStatusPending, 105.0).
		WillReturnResult(sqlmock.NewResult(8, 1))
	for _, it := range items {
		mock.ExpectExec(regexp.QuoteMeta(insertOrderItem)).
			WithArgs(8, it.ProductID, it.ProductTitle, it.Quantity, it.Price, it.Subtotal).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta(updateStatus)).
		WithArgs(constant.OrderStatusConfirmed, 8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := conn.Beginx()
	require.NoError(t, err)
	id, err := repo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{UserID: 1, Status: constant.OrderStatusPending, TotalPrice: 105})
	require.NoError(t, err)
	assert.Equal(t, uint64(8), id)
	require.NoError(t, repo.InsertOrderItemsTx(ctx, tx, id, items))
	require.NoError(t, repo.UpdateOrderStatusTx(ctx, tx, id, constant.OrderStatusConfirmed))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

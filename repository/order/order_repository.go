package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error
	UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error
	GetOrderDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.OrderDetail, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	insertOrder     = "INSERT INTO orders (user_id, status, total_price, created_at) VALUES (?, ?, ?, NOW())"
	insertOrderItem = "INSERT INTO order_items (order_id, product_id, product_title, quantity, price, subtotal) VALUES (?, ?, ?, ?, ?, ?)"
	updateStatus    = "UPDATE orders SET status = ? WHERE id = ?"
	getOrder        = "SELECT id, user_id, status, total_price, created_at FROM orders WHERE id = ? FOR UPDATE"
	listOrders      = "SELECT id, user_id, status, total_price, created_at FROM orders WHERE user_id = ? ORDER BY id DESC"
	listOrderItems  = "SELECT product_id, product_title, quantity, price, subtotal FROM order_items WHERE order_id = ? ORDER BY id"
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertOrder, req.UserID, req.Status, req.TotalPrice)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertOrderItem, orderID, it.ProductID, it.ProductTitle, it.Quantity, it.Price, it.Subtotal); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx, updateStatus, status, orderID)
	return err
}

func (r *SQL) GetOrderDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	if err := tx.QueryRowxContext(ctx, getOrder, orderID).StructScan(&detail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.OrderDetail, error) {
	orders := make([]model.OrderDetail, 0)
	if err := r.conn.SelectContext(ctx, &orders, listOrders, userID); err != nil {
		return nil, err
	}
	for i := range orders {
		items := make([]model.OrderItem, 0)
		if err := r.conn.SelectContext(ctx, &items, listOrderItems, orders[i].ID); err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

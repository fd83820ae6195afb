package cart

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/model"
)

type SQL struct {
	conn *sqlx.DB
}

type CartRepository interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.CartRow, error)
	ListByUserTx(ctx context.Context, tx *sqlx.Tx, userID uint64) ([]model.CartRow, error)
	GetItem(ctx context.Context, userID, itemID uint64) (*model.CartItemEntity, error)
	Add(ctx context.Context, userID, productID uint64, quantity int) error
	UpdateQuantity(ctx context.Context, itemID uint64, quantity int) error
	Delete(ctx context.Context, itemID uint64) error
	Clear(ctx context.Context, userID uint64) error
	ClearTx(ctx context.Context, tx *sqlx.Tx, userID uint64) error
}

func NewCartRepository(conn *sqlx.DB) CartRepository {
	return &SQL{conn: conn}
}

const (
	listCartRows = `SELECT c.id AS cart_item_id, c.quantity,
p.id, p.seller_id, p.title, p.description, p.price, p.cover_image_url, p.created_at, p.updated_at
FROM shopping_cart c
JOIN products p ON p.id = c.product_id
WHERE c.user_id = ?
ORDER BY c.id`

	getCartItem = `SELECT id, user_id, product_id, quantity, created_at FROM shopping_cart WHERE id = ? AND user_id = ?`

	// merges into the existing row thanks to UNIQUE(user_id, product_id)
	addCartItem = `INSERT INTO shopping_cart (user_id, product_id, quantity, created_at, updated_at)
VALUES (?, ?, ?, NOW(), NOW())
ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity), updated_at = NOW()`

	updateQuantity = `UPDATE shopping_cart SET quantity = ?, updated_at = NOW() WHERE id = ?`
	deleteCartItem = `DELETE FROM shopping_cart WHERE id = ?`
	clearCart      = `DELETE FROM shopping_cart WHERE user_id = ?`
)

func (s *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.CartRow, error) {
	rows := make([]model.CartRow, 0)
	if err := s.conn.SelectContext(ctx, &rows, listCartRows, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SQL) ListByUserTx(ctx context.Context, tx *sqlx.Tx, userID uint64) ([]model.CartRow, error) {
	rows := make([]model.CartRow, 0)
	if err := tx.SelectContext(ctx, &rows, listCartRows+" FOR UPDATE", userID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SQL) GetItem(ctx context.Context, userID, itemID uint64) (*model.CartItemEntity, error) {
	var item model.CartItemEntity
	if err := s.conn.GetContext(ctx, &item, getCartItem, itemID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *SQL) Add(ctx context.Context, userID, productID uint64, quantity int) error {
	_, err := s.conn.ExecContext(ctx, addCartItem, userID, productID, quantity)
	return err
}

func (s *SQL) UpdateQuantity(ctx context.Context, itemID uint64, quantity int) error {
	_, err := s.conn.ExecContext(ctx, updateQuantity, quantity, itemID)
	return err
}

func (s *SQL) Delete(ctx context.Context, itemID uint64) error {
	_, err := s.conn.ExecContext(ctx, deleteCartItem, itemID)
	return err
}

func (s *SQL) Clear(ctx context.Context, userID uint64) error {
	_, err := s.conn.ExecContext(ctx, clearCart, userID)
	return err
}

func (s *SQL) ClearTx(ctx context.Context, tx *sqlx.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, clearCart, userID)
	return err
}

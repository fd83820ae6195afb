package wishlist

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/model"
)

// ErrDuplicate is returned when the product is already in the wishlist.
var ErrDuplicate = errors.New("wishlist item already exists")

// ErrNotFound is returned when removing an item that is not there.
var ErrNotFound = errors.New("wishlist item not found")

type SQL struct {
	conn *sqlx.DB
}

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.WishlistItem, error)
	Add(ctx context.Context, userID, productID uint64) (uint64, error)
	Remove(ctx context.Context, userID, productID uint64) error
}

func NewWishlistRepository(conn *sqlx.DB) WishlistRepository {
	return &SQL{conn: conn}
}

const (
	listWishlist = `SELECT w.id, w.product_id, p.title, p.cover_image_url, p.price
FROM wish_list w
JOIN products p ON p.id = w.product_id
WHERE w.user_id = ?
ORDER BY w.id`

	insertWishlist = `INSERT INTO wish_list (user_id, product_id, created_at) VALUES (?, ?, NOW())`
	deleteWishlist = `DELETE FROM wish_list WHERE user_id = ? AND product_id = ?`

	mysqlDuplicateEntry = 1062
)

func (s *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.WishlistItem, error) {
	items := make([]model.WishlistItem, 0)
	if err := s.conn.SelectContext(ctx, &items, listWishlist, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) Add(ctx context.Context, userID, productID uint64) (uint64, error) {
	res, err := s.conn.ExecContext(ctx, insertWishlist, userID, productID)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) Remove(ctx context.Context, userID, productID uint64) error {
	res, err := s.conn.ExecContext(ctx, deleteWishlist, userID, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

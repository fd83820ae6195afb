package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, q *model.ProductQuery) ([]model.ProductEntity, int64, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.ProductEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error)
	Create(ctx context.Context, p *model.ProductEntity) (*model.ProductEntity, error)
	Update(ctx context.Context, p *model.ProductEntity) error
	UpdateCover(ctx context.Context, id uint64, url string) error
	Delete(ctx context.Context, id uint64) error
	Count(ctx context.Context) (int64, error)
	Tables(ctx context.Context) ([]string, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	productColumns = `p.id, p.seller_id, p.title, p.description, p.price, p.cover_image_url, p.created_at, p.updated_at`

	getProductDetail = `SELECT ` + productColumns + `, COALESCE(u.username, '') AS seller_username
FROM products p
LEFT JOIN users u ON u.id = p.seller_id
WHERE p.id = ?`

	listBySeller = `SELECT ` + productColumns + ` FROM products p WHERE p.seller_id = ? ORDER BY p.id`

	insertProduct = `INSERT INTO products (seller_id, title, description, price, cover_image_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateProduct = `UPDATE products SET title = ?, description = ?, price = ?, cover_image_url = ?, updated_at = ? WHERE id = ?`

	updateCover = `UPDATE products SET cover_image_url = ?, updated_at = NOW() WHERE id = ?`

	deleteProduct = `DELETE FROM products WHERE id = ?`

	countProducts = `SELECT COUNT(*) FROM products`

	listTables = `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name`
)

// sortColumns whitelists the columns a list may be ordered by.
var sortColumns = map[string]string{
	"id":         "p.id",
	"title":      "p.title",
	"price":      "p.price",
	"created_at": "p.created_at",
	"updated_at": "p.updated_at",
}

type detailRow struct {
	model.ProductEntity
	SellerUsername string `db:"seller_username"`
}

func (s *SQL) List(ctx context.Context, q *model.ProductQuery) ([]model.ProductEntity, int64, error) {
	where, args := listFilter(q.Search)

	var total int64
	if err := s.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM products p"+where, args...); err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "p.id"
	}
	order := "ASC"
	if q.SortOrder == "desc" {
		order = "DESC"
	}

	query := fmt.Sprintf("SELECT %s FROM products p%s ORDER BY %s %s LIMIT ? OFFSET ?", productColumns, where, column, order)
	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)

	items := make([]model.ProductEntity, 0)
	if err := s.conn.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func listFilter(search string) (string, []any) {
	if search == "" {
		return "", nil
	}
	like := "%" + strings.ToLower(search) + "%"
	return " WHERE (LOWER(p.title) LIKE ? OR LOWER(p.description) LIKE ?)", []any{like, like}
}

func (s *SQL) ListBySeller(ctx context.Context, sellerID uint64) ([]model.ProductEntity, error) {
	items := make([]model.ProductEntity, 0)
	if err := s.conn.SelectContext(ctx, &items, listBySeller, sellerID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	var row detailRow
	if err := s.conn.QueryRowxContext(ctx, getProductDetail, id).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w", err)
	}

	detail := &model.ProductDetail{ProductEntity: row.ProductEntity}
	if row.SellerUsername != "" {
		detail.Seller = &model.Seller{ID: row.SellerID, Username: row.SellerUsername}
	}
	return detail, nil
}

func (s *SQL) Create(ctx context.Context, p *model.ProductEntity) (*model.ProductEntity, error) {
	res, err := s.conn.ExecContext(ctx, insertProduct, p.SellerID, p.Title, p.Description, p.Price, p.CoverImageURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = uint64(id)
	return p, nil
}

func (s *SQL) Update(ctx context.Context, p *model.ProductEntity) error {
	_, err := s.conn.ExecContext(ctx, updateProduct, p.Title, p.Description, p.Price, p.CoverImageURL, p.UpdatedAt, p.ID)
	return err
}

func (s *SQL) UpdateCover(ctx context.Context, id uint64, url string) error {
	_, err := s.conn.ExecContext(ctx, updateCover, url, id)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, deleteProduct, id)
	return err
}

func (s *SQL) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.conn.GetContext(ctx, &n, countProducts)
	return n, err
}

func (s *SQL) Tables(ctx context.Context) ([]string, error) {
	var tables []string
	err := s.conn.SelectContext(ctx, &tables, listTables)
	return tables, err
}

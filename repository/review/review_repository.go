package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/model"
)

// ErrNotFound is returned when an update or delete touches no row.
var ErrNotFound = errors.New("review not found")

type SQL struct {
	conn *sqlx.DB
}

type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID uint64) ([]model.Review, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Review, error)
	GetByID(ctx context.Context, id uint64) (*model.Review, error)
	Create(ctx context.Context, r *model.ReviewEntity) (*model.ReviewEntity, error)
	Update(ctx context.Context, r *model.ReviewEntity) error
	Delete(ctx context.Context, id uint64) error
}

func NewReviewRepository(conn *sqlx.DB) ReviewRepository {
	return &SQL{conn: conn}
}

const (
	reviewSelect = `SELECT r.id, r.user_id, r.product_id, r.rating, r.title, r.content, r.created_at, r.updated_at,
COALESCE(u.username, '') AS author_username
FROM reviews r
LEFT JOIN users u ON u.id = r.user_id`

	insertReview = `INSERT INTO reviews (user_id, product_id, rating, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateReview = `UPDATE reviews SET rating = ?, title = ?, content = ?, updated_at = ? WHERE id = ?`
	deleteReview = `DELETE FROM reviews WHERE id = ?`
)

type reviewRow struct {
	model.ReviewEntity
	AuthorUsername string `db:"author_username"`
}

func (r reviewRow) toReview() model.Review {
	return model.Review{
		ReviewEntity: r.ReviewEntity,
		Author:       model.ReviewAuthor{ID: r.UserID, Username: r.AuthorUsername},
	}
}

func (s *SQL) list(ctx context.Context, query string, arg uint64) ([]model.Review, error) {
	var rows []reviewRow
	if err := s.conn.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, err
	}
	out := make([]model.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toReview())
	}
	return out, nil
}

func (s *SQL) ListByProduct(ctx context.Context, productID uint64) ([]model.Review, error) {
	return s.list(ctx, reviewSelect+" WHERE r.product_id = ? ORDER BY r.created_at DESC, r.id DESC", productID)
}

func (s *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	return s.list(ctx, reviewSelect+" WHERE r.user_id = ? ORDER BY r.created_at DESC, r.id DESC", userID)
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	var row reviewRow
	if err := s.conn.GetContext(ctx, &row, reviewSelect+" WHERE r.id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rv := row.toReview()
	return &rv, nil
}

func (s *SQL) Create(ctx context.Context, r *model.ReviewEntity) (*model.ReviewEntity, error) {
	res, err := s.conn.ExecContext(ctx, insertReview, r.UserID, r.ProductID, r.Rating, r.Title, r.Content, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	r.ID = uint64(id)
	return r, nil
}

func (s *SQL) Update(ctx context.Context, r *model.ReviewEntity) error {
	return affectedOne(s.conn.ExecContext(ctx, updateReview, r.Rating, r.Title, r.Content, r.UpdatedAt, r.ID))
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	return affectedOne(s.conn.ExecContext(ctx, deleteReview, id))
}

func affectedOne(res sql.Result, err error) error {
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

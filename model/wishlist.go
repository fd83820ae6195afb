package model

import "time"

type WishlistEntity struct {
	ID        uint64    `db:"id"`
	UserID    uint64    `db:"user_id"`
	ProductID uint64    `db:"product_id"`
	CreatedAt time.Time `db:"created_at"`
}

type WishlistItem struct {
	ID            uint64  `db:"id" json:"id"`
	ProductID     uint64  `db:"product_id" json:"productId"`
	Title         string  `db:"title" json:"title"`
	CoverImageURL *string `db:"cover_image_url" json:"coverImageUrl"`
	Price         float64 `db:"price" json:"price"`
}

type WishlistAddResponse struct {
	ID uint64 `json:"id"`
}

package model

import "time"

type ReviewEntity struct {
	ID        uint64    `db:"id" json:"id"`
	UserID    uint64    `db:"user_id" json:"user_id"`
	ProductID uint64    `db:"product_id" json:"product_id"`
	Rating    int       `db:"rating" json:"rating"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type ReviewAuthor struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type Review struct {
	ReviewEntity
	Author ReviewAuthor `json:"author"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required,max=500"`
}

type ReviewListResponse struct {
	Reviews       []Review `json:"reviews"`
	TotalReviews  int      `json:"total_reviews"`
	AverageRating float64  `json:"average_rating"`
}

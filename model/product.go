package model

import "time"

type ProductEntity struct {
	ID            uint64    `db:"id" json:"id"`
	SellerID      uint64    `db:"seller_id" json:"seller_id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Price         float64   `db:"price" json:"price"`
	CoverImageURL *string   `db:"cover_image_url" json:"cover_image_url"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Seller is the public part of the product owner.
type Seller struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type ProductDetail struct {
	ProductEntity
	Seller *Seller `json:"seller,omitempty"`
}

// ProductQuery holds the list filters after normalization.
type ProductQuery struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string
}

type ProductListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	NextPage   *int  `json:"next_page"`
	PrevPage   *int  `json:"prev_page"`
}

type ProductListResponse struct {
	Items []ProductEntity `json:"items"`
	Meta  ProductListMeta `json:"meta"`
}

type ProductRequest struct {
	Title         string   `json:"title" validate:"required,max=100"`
	Description   string   `json:"description" validate:"required"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	CoverImageURL string   `json:"cover_image_url" validate:"omitempty,max=255"`
}

type ProductHealth struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	ProductCount *int64 `json:"product_count"`
	Version      string `json:"version"`
}

type DatabaseDebug struct {
	Tables       []string `json:"tables"`
	TableExists  bool     `json:"table_exists"`
	ProductCount int64    `json:"product_count"`
	Error        string   `json:"error,omitempty"`
}

// CoverUpload is an image headed for object storage.
type CoverUpload struct {
	FileName    string
	ContentType string
	Size        int64
}
